package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound = errors.New("task not found")
)

// TaskService 清洁任务目录业务接口
// 写操作均返回刷新后的完整任务列表
type TaskService interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, req *dto.CreateTaskRequest) ([]model.Task, error)
	Update(ctx context.Context, req *dto.UpdateTaskRequest) ([]model.Task, error)
	Delete(ctx context.Context, taskID uint) ([]model.Task, error)
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.Task.List(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) ([]model.Task, error) {
	task := &model.Task{
		Name:        strings.TrimSpace(req.TaskName),
		Description: strings.TrimSpace(req.TaskDescription),
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, err
	}
	return s.List(ctx)
}

func (s *taskService) Update(ctx context.Context, req *dto.UpdateTaskRequest) ([]model.Task, error) {
	task, err := s.get(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	task.Name = strings.TrimSpace(req.TaskName)
	if req.TaskDescription != nil {
		task.Description = strings.TrimSpace(*req.TaskDescription)
	}

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.Uint("task_id", req.TaskID), zap.Error(err))
		return nil, err
	}
	return s.List(ctx)
}

func (s *taskService) Delete(ctx context.Context, taskID uint) ([]model.Task, error) {
	if _, err := s.get(ctx, taskID); err != nil {
		return nil, err
	}

	if err := s.repo.Task.Delete(ctx, taskID); err != nil {
		s.logger.Error("删除任务失败", zap.Uint("task_id", taskID), zap.Error(err))
		return nil, err
	}
	return s.List(ctx)
}

func (s *taskService) get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.Uint("task_id", id), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// ensureTasksExist 校验引用的任务全部存在
func ensureTasksExist(ctx context.Context, repo *repository.Repository, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := repo.Task.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrTaskNotFound
	}
	return nil
}

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

// ── 清洁流程业务错误 ──

var (
	ErrInvalidCode = errors.New("invalid code")
)

// CleaningService 清洁签到业务接口
type CleaningService interface {
	// Clean 校验清洁码并记录一次清洁，卫生间状态无条件重置为 open
	Clean(ctx context.Context, req *dto.CleanRequest) (*dto.CleanResponse, error)
	// ValidateCode 校验清洁码是否对应有效用户
	ValidateCode(ctx context.Context, code string) (*dto.ValidateCodeResponse, error)
}

type cleaningService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCleaningService 创建 CleaningService 实例
func NewCleaningService(repo *repository.Repository, logger *zap.Logger) CleaningService {
	return &cleaningService{repo: repo, logger: logger}
}

// ────────────────────── Clean ──────────────────────

func (s *cleaningService) Clean(ctx context.Context, req *dto.CleanRequest) (*dto.CleanResponse, error) {
	// 1. 卫生间必须存在
	bathroom, err := s.repo.Bathroom.GetByID(ctx, req.BathroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBathroomNotFound
		}
		s.logger.Error("查询卫生间失败", zap.Uint("bathroom_id", req.BathroomID), zap.Error(err))
		return nil, err
	}
	if !bathroom.Active {
		return nil, ErrBathroomNotFound
	}

	// 2. 清洁码对应有效用户
	user, err := s.lookupCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	// 3. 清洁记录、任务行与状态重置在同一事务内
	taskIDs := dto.TaskIDs(req.Tasks)
	cleaning := &model.Cleaning{
		BathroomID: bathroom.BathroomID,
		UserID:     &user.UserID,
		Tasks:      make([]model.CleaningTask, 0, len(taskIDs)),
	}
	for _, id := range taskIDs {
		cleaning.Tasks = append(cleaning.Tasks, model.CleaningTask{TaskID: id})
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := ensureTasksExist(ctx, tx, taskIDs); err != nil {
			return err
		}
		if err := tx.Cleaning.Create(ctx, cleaning); err != nil {
			return err
		}
		return tx.Bathroom.UpdateStatus(ctx, bathroom.BathroomID, model.BathroomStatusOpen)
	})
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.logger.Error("记录清洁失败", zap.Uint("bathroom_id", bathroom.BathroomID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("清洁已记录",
		zap.Uint("bathroom_id", bathroom.BathroomID),
		zap.Uint("user_id", user.UserID),
		zap.Int("tasks", len(taskIDs)),
	)

	// 4. 返回最新视图
	cleanings, err := s.repo.Cleaning.ListRecentByBathroom(ctx, bathroom.BathroomID, recentCleanings)
	if err != nil {
		s.logger.Error("查询清洁记录失败", zap.Error(err))
		return nil, err
	}
	bathrooms, err := s.repo.Bathroom.ListByLocation(ctx, bathroom.LocationID)
	if err != nil {
		s.logger.Error("查询卫生间列表失败", zap.Error(err))
		return nil, err
	}

	return &dto.CleanResponse{Cleanings: cleanings, Bathrooms: bathrooms}, nil
}

// ────────────────────── ValidateCode ──────────────────────

func (s *cleaningService) ValidateCode(ctx context.Context, code string) (*dto.ValidateCodeResponse, error) {
	user, err := s.lookupCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return &dto.ValidateCodeResponse{Valid: false}, nil
		}
		return nil, err
	}
	return &dto.ValidateCodeResponse{Valid: true, UserID: user.UserID, Name: user.Username}, nil
}

// ── 内部辅助方法 ──

const recentCleanings = 10

// lookupCode 按清洁码查找有效用户，停用用户视为无效码
func (s *cleaningService) lookupCode(ctx context.Context, code string) (*model.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCode
	}

	user, err := s.repo.User.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		s.logger.Error("查询清洁码失败", zap.Error(err))
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidCode
	}
	return user, nil
}

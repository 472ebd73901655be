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

// ── 分支模块业务错误 ──

var (
	ErrBranchNotFound = errors.New("branch not found")
)

// BranchService 分支机构业务接口
type BranchService interface {
	List(ctx context.Context) ([]model.Branch, error)
	Create(ctx context.Context, req *dto.CreateBranchRequest) (*model.Branch, error)
	Update(ctx context.Context, req *dto.UpdateBranchRequest) ([]model.Branch, error)
	Delete(ctx context.Context, branchID uint) ([]model.Branch, error)
}

type branchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBranchService 创建 BranchService 实例
func NewBranchService(repo *repository.Repository, logger *zap.Logger) BranchService {
	return &branchService{repo: repo, logger: logger}
}

func (s *branchService) List(ctx context.Context) ([]model.Branch, error) {
	branches, err := s.repo.Branch.ListActiveTree(ctx)
	if err != nil {
		s.logger.Error("查询分支列表失败", zap.Error(err))
		return nil, err
	}
	return branches, nil
}

func (s *branchService) Create(ctx context.Context, req *dto.CreateBranchRequest) (*model.Branch, error) {
	branch := &model.Branch{
		Name:                 strings.TrimSpace(req.Name),
		Address:              strings.TrimSpace(req.Address),
		ToNotificationEmails: normalizeEmailList(req.ToNotificationEmails),
		CcNotificationEmails: normalizeEmailList(req.CcNotificationEmails),
		Active:               true,
	}

	if err := s.repo.Branch.Create(ctx, branch); err != nil {
		s.logger.Error("创建分支失败", zap.Error(err))
		return nil, err
	}

	branch.Locations = []model.Location{}
	return branch, nil
}

func (s *branchService) Update(ctx context.Context, req *dto.UpdateBranchRequest) ([]model.Branch, error) {
	branch, err := s.repo.Branch.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("查询分支失败", zap.Uint("branch_id", req.BranchID), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		branch.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		branch.Address = strings.TrimSpace(*req.Address)
	}
	if req.ToNotificationEmails != nil {
		branch.ToNotificationEmails = normalizeEmailList(*req.ToNotificationEmails)
	}
	if req.CcNotificationEmails != nil {
		branch.CcNotificationEmails = normalizeEmailList(*req.CcNotificationEmails)
	}

	if err := s.repo.Branch.Update(ctx, branch); err != nil {
		s.logger.Error("更新分支失败", zap.Uint("branch_id", req.BranchID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

func (s *branchService) Delete(ctx context.Context, branchID uint) ([]model.Branch, error) {
	if _, err := s.repo.Branch.GetByID(ctx, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("查询分支失败", zap.Uint("branch_id", branchID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Branch.Delete(ctx, branchID); err != nil {
		s.logger.Error("删除分支失败", zap.Uint("branch_id", branchID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ── 内部辅助方法 ──

// splitEmails 解析逗号分隔的邮箱列表，去除空白与空项
func splitEmails(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func normalizeEmailList(raw string) string {
	return strings.Join(splitEmails(raw), ",")
}

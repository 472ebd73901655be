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

// ── 区域模块业务错误 ──

var (
	ErrLocationNotFound = errors.New("location not found")
)

// LocationService 区域业务接口
type LocationService interface {
	// List 分支下的有效区域，附带完整卫生间视图
	List(ctx context.Context, branchID uint) ([]model.Location, error)
	Create(ctx context.Context, req *dto.CreateLocationRequest) (*model.Location, error)
	Update(ctx context.Context, req *dto.UpdateLocationRequest) ([]model.Location, error)
	// Delete 软删除区域，返回该分支刷新后的区域列表
	Delete(ctx context.Context, locationID, branchID uint) ([]model.Location, error)
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *locationService) List(ctx context.Context, branchID uint) ([]model.Location, error) {
	locations, err := s.repo.Location.ListActiveByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("列出区域失败", zap.Uint("branch_id", branchID), zap.Error(err))
		return nil, err
	}

	for i := range locations {
		bathrooms, err := s.repo.Bathroom.ListByLocation(ctx, locations[i].LocationID)
		if err != nil {
			s.logger.Error("加载区域卫生间失败", zap.Uint("location_id", locations[i].LocationID), zap.Error(err))
			return nil, err
		}
		locations[i].Bathrooms = bathrooms
	}

	return locations, nil
}

// ────────────────────── Create ──────────────────────

func (s *locationService) Create(ctx context.Context, req *dto.CreateLocationRequest) (*model.Location, error) {
	if _, err := s.repo.Branch.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		s.logger.Error("查询分支失败", zap.Uint("branch_id", req.BranchID), zap.Error(err))
		return nil, err
	}

	loc := &model.Location{
		BranchID:    req.BranchID,
		Name:        strings.TrimSpace(req.LocationName),
		Description: strings.TrimSpace(req.LocationDescription),
		Active:      true,
	}

	if err := s.repo.Location.Create(ctx, loc); err != nil {
		s.logger.Error("创建区域失败", zap.Error(err))
		return nil, err
	}

	loc.Bathrooms = []model.Bathroom{}
	return loc, nil
}

// ────────────────────── Update ──────────────────────

func (s *locationService) Update(ctx context.Context, req *dto.UpdateLocationRequest) ([]model.Location, error) {
	loc, err := s.getInBranch(ctx, req.LocationID, req.BranchID)
	if err != nil {
		return nil, err
	}

	if req.LocationName != nil {
		loc.Name = strings.TrimSpace(*req.LocationName)
	}
	if req.LocationDescription != nil {
		loc.Description = strings.TrimSpace(*req.LocationDescription)
	}

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		s.logger.Error("更新区域失败", zap.Uint("location_id", req.LocationID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx, req.BranchID)
}

// ────────────────────── Delete ──────────────────────

func (s *locationService) Delete(ctx context.Context, locationID, branchID uint) ([]model.Location, error) {
	if _, err := s.getInBranch(ctx, locationID, branchID); err != nil {
		return nil, err
	}

	if err := s.repo.Location.Deactivate(ctx, locationID); err != nil {
		s.logger.Error("删除区域失败", zap.Uint("location_id", locationID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx, branchID)
}

// ── 内部辅助方法 ──

// getInBranch 查询有效区域，并要求其归属给定分支
func (s *locationService) getInBranch(ctx context.Context, id, branchID uint) (*model.Location, error) {
	loc, err := s.getActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc.BranchID != branchID {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

func (s *locationService) getActive(ctx context.Context, id uint) (*model.Location, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询区域失败", zap.Uint("location_id", id), zap.Error(err))
		return nil, err
	}
	if !loc.Active {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lavtracker/backend/internal/model"
)

// LocationRepository 区域数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id uint) (*model.Location, error)
	ListActiveByBranch(ctx context.Context, branchID uint) ([]model.Location, error)
	Update(ctx context.Context, loc *model.Location) error
	// Deactivate 软删除：仅置 active=false，历史记录保留
	Deactivate(ctx context.Context, id uint) error
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepo 创建 LocationRepository 实例
func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(loc).Error
}

func (r *locationRepo) GetByID(ctx context.Context, id uint) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("location_id = ?", id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) ListActiveByBranch(ctx context.Context, branchID uint) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("name ASC").
		Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(loc).Error
}

func (r *locationRepo) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("location_id = ?", id).
		Update("active", false).Error
}

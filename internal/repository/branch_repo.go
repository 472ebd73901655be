package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lavtracker/backend/internal/model"
)

// BranchRepository 分支机构数据访问接口
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id uint) (*model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id uint) error
	// ListActiveTree 有效分支 → 有效区域 → 有效卫生间（含任务清单），分支按名称排序
	ListActiveTree(ctx context.Context) ([]model.Branch, error)
}

type branchRepo struct {
	db *gorm.DB
}

// NewBranchRepo 创建 BranchRepository 实例
func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(branch).Error
}

func (r *branchRepo) GetByID(ctx context.Context, id uint) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) Update(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(branch).Error
}

// Delete 硬删除分支及其下属数据
// SQLite 默认不启用外键约束，因此子表显式删除
func (r *branchRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locations := tx.Model(&model.Location{}).Select("location_id").Where("branch_id = ?", id)
		bathrooms := tx.Model(&model.Bathroom{}).Select("bathroom_id").Where("location_id IN (?)", locations)
		if err := deleteBathroomChildren(tx, bathrooms); err != nil {
			return err
		}
		if err := tx.Where("location_id IN (?)", locations).Delete(&model.Bathroom{}).Error; err != nil {
			return err
		}
		if err := tx.Where("branch_id = ?", id).Delete(&model.Location{}).Error; err != nil {
			return err
		}
		return tx.Where("branch_id = ?", id).Delete(&model.Branch{}).Error
	})
}

func (r *branchRepo) ListActiveTree(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("name ASC")
		}).
		Preload("Locations.Bathrooms", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("display_order ASC, bathroom_id ASC")
		}).
		Preload("Locations.Bathrooms.BathroomTasks.Task").
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

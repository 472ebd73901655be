package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lavtracker/backend/internal/model"
)

// InspectionRepository 巡检记录数据访问接口
type InspectionRepository interface {
	// Create 写入巡检记录及其问题项
	Create(ctx context.Context, inspection *model.Inspection) error
	// ListStale 巡检时间不晚于 before 的记录，预加载问题项与 Bathroom.Location.Branch
	ListStale(ctx context.Context, before time.Time) ([]model.Inspection, error)
	// Touch 刷新 updated_at，作为最近一次提醒时间
	Touch(ctx context.Context, id uint, at time.Time) error
	ListForExport(ctx context.Context, locationID uint) ([]model.Inspection, error)
}

type inspectionRepo struct {
	db *gorm.DB
}

// NewInspectionRepo 创建 InspectionRepository 实例
func NewInspectionRepo(db *gorm.DB) InspectionRepository {
	return &inspectionRepo{db: db}
}

func (r *inspectionRepo) Create(ctx context.Context, inspection *model.Inspection) error {
	items := inspection.Items
	inspection.Items = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(inspection).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		for i := range items {
			items[i].InspectionID = inspection.InspectionID
		}
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	inspection.Items = items
	return nil
}

func (r *inspectionRepo) ListStale(ctx context.Context, before time.Time) ([]model.Inspection, error) {
	var inspections []model.Inspection
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Bathroom.Location.Branch").
		Where("inspection_date <= ?", before).
		Order("inspection_date ASC, inspection_id ASC").
		Find(&inspections).Error
	return inspections, err
}

func (r *inspectionRepo) Touch(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Inspection{}).
		Where("inspection_id = ?", id).
		UpdateColumn("updated_at", at).Error
}

func (r *inspectionRepo) ListForExport(ctx context.Context, locationID uint) ([]model.Inspection, error) {
	var inspections []model.Inspection
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Bathroom").
		Joins("JOIN bathrooms ON bathrooms.bathroom_id = inspections.bathroom_id").
		Where("bathrooms.location_id = ?", locationID).
		Order("inspections.inspection_date DESC, inspections.inspection_id DESC").
		Find(&inspections).Error
	return inspections, err
}

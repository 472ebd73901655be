package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lavtracker/backend/internal/model"
)

// CleaningRepository 清洁记录数据访问接口
type CleaningRepository interface {
	// Create 写入清洁记录及其任务行
	Create(ctx context.Context, cleaning *model.Cleaning) error
	ListRecentByBathroom(ctx context.Context, bathroomID uint, limit int) ([]model.Cleaning, error)
	// ListForExport 按区域与时间范围导出，from/to 为空表示不限
	ListForExport(ctx context.Context, locationID uint, from, to *time.Time) ([]model.Cleaning, error)
}

type cleaningRepo struct {
	db *gorm.DB
}

// NewCleaningRepo 创建 CleaningRepository 实例
func NewCleaningRepo(db *gorm.DB) CleaningRepository {
	return &cleaningRepo{db: db}
}

func (r *cleaningRepo) Create(ctx context.Context, cleaning *model.Cleaning) error {
	tasks := cleaning.Tasks
	cleaning.Tasks = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(cleaning).Error; err != nil {
		return err
	}
	if len(tasks) > 0 {
		for i := range tasks {
			tasks[i].CleaningID = cleaning.CleaningID
		}
		if err := db.Omit(clause.Associations).Create(&tasks).Error; err != nil {
			return err
		}
	}
	cleaning.Tasks = tasks
	return nil
}

func (r *cleaningRepo) ListRecentByBathroom(ctx context.Context, bathroomID uint, limit int) ([]model.Cleaning, error) {
	var cleanings []model.Cleaning
	err := r.db.WithContext(ctx).
		Preload("Tasks.Task").
		Preload("User").
		Where("bathroom_id = ?", bathroomID).
		Order("created_at DESC, cleaning_id DESC").
		Limit(limit).
		Find(&cleanings).Error
	return cleanings, err
}

func (r *cleaningRepo) ListForExport(ctx context.Context, locationID uint, from, to *time.Time) ([]model.Cleaning, error) {
	var cleanings []model.Cleaning
	db := r.db.WithContext(ctx).
		Preload("Bathroom").
		Preload("User").
		Preload("Tasks.Task").
		Joins("JOIN bathrooms ON bathrooms.bathroom_id = cleanings.bathroom_id").
		Where("bathrooms.location_id = ?", locationID)

	if from != nil {
		db = db.Where("cleanings.created_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("cleanings.created_at < ?", *to)
	}

	err := db.Order("cleanings.created_at DESC, cleanings.cleaning_id DESC").Find(&cleanings).Error
	return cleanings, err
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lavtracker/backend/internal/model"
)

// AppSettingRepository 应用设置数据访问接口（单行）
type AppSettingRepository interface {
	// Get 读取设置行，不存在时返回 gorm.ErrRecordNotFound
	Get(ctx context.Context) (*model.AppSetting, error)
	// Upsert 按固定主键写入，行不存在时创建
	Upsert(ctx context.Context, setting *model.AppSetting) error
}

type appSettingRepo struct {
	db *gorm.DB
}

// NewAppSettingRepo 创建 AppSettingRepository 实例
func NewAppSettingRepo(db *gorm.DB) AppSettingRepository {
	return &appSettingRepo{db: db}
}

func (r *appSettingRepo) Get(ctx context.Context) (*model.AppSetting, error) {
	var setting model.AppSetting
	err := r.db.WithContext(ctx).
		Where("singleton = ?", true).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *appSettingRepo) Upsert(ctx context.Context, setting *model.AppSetting) error {
	setting.Singleton = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton"}},
			DoUpdates: clause.AssignmentColumns([]string{"theme", "take_photo_on_report", "updated_at"}),
		}).
		Create(setting).Error
}

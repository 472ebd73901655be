package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
)

// ── 应用设置业务错误 ──

var (
	ErrInvalidTheme = errors.New("invalid theme selection")
)

// SettingsService 应用设置业务接口
// 读取时设置行不存在则返回默认值，写入时按固定主键 upsert
type SettingsService interface {
	Get(ctx context.Context) (*dto.Settings, error)
	UpdateTakePhoto(ctx context.Context, takePhoto bool) (*dto.Settings, error)
	UpdateTheme(ctx context.Context, theme string) (*dto.Settings, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*dto.Settings, error) {
	setting, err := loadSetting(ctx, s.repo)
	if err != nil {
		s.logger.Error("读取应用设置失败", zap.Error(err))
		return nil, err
	}
	return toSettings(setting), nil
}

func (s *settingsService) UpdateTakePhoto(ctx context.Context, takePhoto bool) (*dto.Settings, error) {
	return s.update(ctx, func(setting *model.AppSetting) {
		setting.TakePhotoOnReport = takePhoto
	})
}

func (s *settingsService) UpdateTheme(ctx context.Context, theme string) (*dto.Settings, error) {
	if !model.Themes[theme] {
		return nil, ErrInvalidTheme
	}
	return s.update(ctx, func(setting *model.AppSetting) {
		setting.Theme = theme
	})
}

// update 读取当前设置（或默认值），应用修改后整行写回
func (s *settingsService) update(ctx context.Context, apply func(*model.AppSetting)) (*dto.Settings, error) {
	var result *model.AppSetting
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		setting, err := loadSetting(ctx, tx)
		if err != nil {
			return err
		}
		apply(setting)
		if err := tx.AppSetting.Upsert(ctx, setting); err != nil {
			return err
		}
		result = setting
		return nil
	})
	if err != nil {
		s.logger.Error("更新应用设置失败", zap.Error(err))
		return nil, err
	}
	return toSettings(result), nil
}

func loadSetting(ctx context.Context, repo *repository.Repository) (*model.AppSetting, error) {
	setting, err := repo.AppSetting.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultAppSetting(), nil
		}
		return nil, err
	}
	if !model.Themes[setting.Theme] {
		setting.Theme = model.ThemeClassic
	}
	return setting, nil
}

func toSettings(setting *model.AppSetting) *dto.Settings {
	return &dto.Settings{
		Theme:             setting.Theme,
		TakePhotoOnReport: setting.TakePhotoOnReport,
	}
}

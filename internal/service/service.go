package service

import (
	"go.uber.org/zap"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/repository"
	"lavtracker/backend/pkg/jwt"
	"lavtracker/backend/pkg/mailer"
	"lavtracker/backend/pkg/redis"
	"lavtracker/backend/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Branch     BranchService
	Location   LocationService
	Bathroom   BathroomService
	Task       TaskService
	Cleaning   CleaningService
	Inspection InspectionService
	Settings   SettingsService
	Export     ExportService
}

// NewService 创建 Service 聚合
// rdb 可为 nil：此时不做 Token 黑名单与提醒任务互斥
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Sender,
	photos storage.PhotoStore,
	logger *zap.Logger,
) *Service {
	var (
		blacklist TokenBlacklist
		locker    SweepLocker
	)
	if rdb != nil {
		blacklist = rdb
		locker = rdb
	}

	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, blacklist, logger),
		User:       NewUserService(repo, logger),
		Branch:     NewBranchService(repo, logger),
		Location:   NewLocationService(repo, logger),
		Bathroom:   NewBathroomService(repo, logger),
		Task:       NewTaskService(repo, logger),
		Cleaning:   NewCleaningService(repo, logger),
		Inspection: NewInspectionService(&cfg.Reminder, cfg.Server.BaseURL, repo, mail, photos, locker, logger),
		Settings:   NewSettingsService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}

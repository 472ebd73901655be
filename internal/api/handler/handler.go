package handler

import "lavtracker/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Branch     *BranchHandler
	Location   *LocationHandler
	Bathroom   *BathroomHandler
	Task       *TaskHandler
	Clean      *CleanHandler
	Inspection *InspectionHandler
	Settings   *SettingsHandler
	Export     *ExportHandler
	Health     *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, health *HealthHandler) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Branch:     NewBranchHandler(svc.Branch),
		Location:   NewLocationHandler(svc.Location),
		Bathroom:   NewBathroomHandler(svc.Bathroom),
		Task:       NewTaskHandler(svc.Task),
		Clean:      NewCleanHandler(svc.Cleaning),
		Inspection: NewInspectionHandler(svc.Inspection),
		Settings:   NewSettingsHandler(svc.Settings),
		Export:     NewExportHandler(svc.Export),
		Health:     health,
	}
}

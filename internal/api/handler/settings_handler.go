package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// SettingsHandler 应用设置 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetSettings GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.SettingsResponse{Settings: *settings})
}

// UpdateSettings PATCH /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req, "takePhotoOnReport must be a boolean") {
		return
	}

	settings, err := h.settingsSvc.UpdateTakePhoto(c.Request.Context(), *req.TakePhotoOnReport)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.SettingsResponse{Settings: *settings})
}

// GetTheme GET /api/theme
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.ThemeResponse{Theme: settings.Theme})
}

// UpdateTheme PATCH /api/theme
func (h *SettingsHandler) UpdateTheme(c *gin.Context) {
	var req dto.UpdateThemeRequest
	if !bindJSON(c, &req, "Invalid theme selection") {
		return
	}

	settings, err := h.settingsSvc.UpdateTheme(c.Request.Context(), req.Theme)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.ThemeResponse{Theme: settings.Theme})
}

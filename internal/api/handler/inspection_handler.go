package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// InspectionHandler 巡检流程 HTTP 处理器
type InspectionHandler struct {
	inspectionSvc service.InspectionService
}

// NewInspectionHandler 创建 InspectionHandler
func NewInspectionHandler(inspectionSvc service.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspectionSvc: inspectionSvc}
}

// Inspect 记录巡检不合格
// POST /api/inspection
func (h *InspectionHandler) Inspect(c *gin.Context) {
	var req dto.InspectRequest
	if !bindJSON(c, &req, "bathroomId, locationId and items are required") {
		return
	}

	bathrooms, err := h.inspectionSvc.Inspect(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "Inspection completed successfully", dto.BathroomListResponse{Bathrooms: bathrooms})
}

// Clear 解除巡检状态
// POST /api/inspection/clear
func (h *InspectionHandler) Clear(c *gin.Context) {
	var req dto.ClearInspectionRequest
	if !bindJSON(c, &req, "bathroomId and locationId are required") {
		return
	}

	bathrooms, err := h.inspectionSvc.Clear(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "Inspection cleared successfully", dto.BathroomListResponse{Bathrooms: bathrooms})
}

// Remind 手动触发巡检提醒批次
// POST /api/inspection/remind
// 无待提醒巡检时返回 200 success=false，否则 201
func (h *InspectionHandler) Remind(c *gin.Context) {
	result, err := h.inspectionSvc.SendReminders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if !result.Success {
		response.OKWithMessage(c, "No reminder needed at this time", result)
		return
	}
	response.CreatedWithMessage(c, "Reminder emails sent successfully", result)
}

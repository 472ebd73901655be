package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// CleanHandler 清洁签到 HTTP 处理器
type CleanHandler struct {
	cleaningSvc service.CleaningService
}

// NewCleanHandler 创建 CleanHandler
func NewCleanHandler(cleaningSvc service.CleaningService) *CleanHandler {
	return &CleanHandler{cleaningSvc: cleaningSvc}
}

// Clean 记录一次清洁
// POST /api/clean
func (h *CleanHandler) Clean(c *gin.Context) {
	var req dto.CleanRequest
	if !bindJSON(c, &req, "bathroomId, tasks and code are required") {
		return
	}

	result, err := h.cleaningSvc.Clean(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "Cleaning completed successfully", result)
}

// ValidateCode 校验清洁码
// POST /api/validate
func (h *CleanHandler) ValidateCode(c *gin.Context) {
	var req dto.ValidateCodeRequest
	if !bindJSON(c, &req, "Code required.") {
		return
	}

	result, err := h.cleaningSvc.ValidateCode(c.Request.Context(), req.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if !result.Valid {
		response.OKWithMessage(c, "Invalid code.", result)
		return
	}
	response.OKWithMessage(c, "Valid credentials.", result)
}

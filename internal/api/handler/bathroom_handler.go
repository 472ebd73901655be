package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// BathroomHandler 卫生间模块 HTTP 处理器
type BathroomHandler struct {
	bathroomSvc service.BathroomService
}

// NewBathroomHandler 创建 BathroomHandler
func NewBathroomHandler(bathroomSvc service.BathroomService) *BathroomHandler {
	return &BathroomHandler{bathroomSvc: bathroomSvc}
}

// ListBathrooms 区域卫生间视图
// GET /api/bathrooms?locationId=
func (h *BathroomHandler) ListBathrooms(c *gin.Context) {
	var req dto.BathroomListRequest
	if !bindQuery(c, &req, "locationId required") {
		return
	}

	bathrooms, err := h.bathroomSvc.List(c.Request.Context(), req.LocationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dto.BathroomListResponse{Bathrooms: bathrooms})
}

// CreateBathroom 创建卫生间
// POST /api/bathrooms
func (h *BathroomHandler) CreateBathroom(c *gin.Context) {
	var req dto.CreateBathroomRequest
	if !bindJSON(c, &req, "locationId, name and gender are required") {
		return
	}

	bathroom, err := h.bathroomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "Bathroom created successfully", dto.BathroomResponse{Bathroom: bathroom})
}

// UpdateBathroom 更新卫生间（含排序与任务清单）
// PATCH /api/bathrooms
func (h *BathroomHandler) UpdateBathroom(c *gin.Context) {
	var req dto.UpdateBathroomRequest
	if !bindJSON(c, &req, "bathroomId and locationId are required") {
		return
	}

	bathrooms, err := h.bathroomSvc.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "Bathroom updated successfully", dto.BathroomListResponse{Bathrooms: bathrooms})
}

// DeleteBathroom 删除卫生间
// DELETE /api/bathrooms?bathroomId=&locationId=
func (h *BathroomHandler) DeleteBathroom(c *gin.Context) {
	var req dto.DeleteBathroomRequest
	if !bindQuery(c, &req, "bathroomId and locationId are required") {
		return
	}

	bathrooms, err := h.bathroomSvc.Delete(c.Request.Context(), req.BathroomID, req.LocationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "Bathroom deleted successfully", dto.BathroomListResponse{Bathrooms: bathrooms})
}

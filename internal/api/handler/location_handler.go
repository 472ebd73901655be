package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// LocationHandler 区域模块 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ListLocations 获取分支下的区域列表
// GET /api/locations?branchId=
func (h *LocationHandler) ListLocations(c *gin.Context) {
	var req dto.LocationListRequest
	if !bindQuery(c, &req, "branchId required") {
		return
	}

	locations, err := h.locationSvc.List(c.Request.Context(), req.BranchID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dto.LocationListResponse{Locations: locations})
}

// CreateLocation 创建区域
// POST /api/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !bindJSON(c, &req, "branchId and locationName are required") {
		return
	}

	location, err := h.locationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "Location created successfully", dto.LocationResponse{Location: location})
}

// UpdateLocation 更新区域
// PATCH /api/locations
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req dto.UpdateLocationRequest
	if !bindJSON(c, &req, "locationId and branchId are required") {
		return
	}

	locations, err := h.locationSvc.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "Location updated successfully", dto.LocationListResponse{Locations: locations})
}

// DeleteLocation 停用区域
// DELETE /api/locations?locationId=&branchId=
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	var req dto.DeleteLocationRequest
	if !bindQuery(c, &req, "locationId and branchId are required") {
		return
	}

	locations, err := h.locationSvc.Delete(c.Request.Context(), req.LocationID, req.BranchID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "Location deleted successfully", dto.LocationListResponse{Locations: locations})
}

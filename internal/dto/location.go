package dto

import "lavtracker/backend/internal/model"

// ── 区域模块 DTO ──

// CreateLocationRequest 创建区域请求
type CreateLocationRequest struct {
	BranchID            uint   `json:"branchId"            binding:"required"`
	LocationName        string `json:"locationName"        binding:"required,min=1,max=100"`
	LocationDescription string `json:"locationDescription" binding:"omitempty,max=500"`
}

// UpdateLocationRequest 更新区域请求
type UpdateLocationRequest struct {
	LocationID          uint    `json:"locationId"          binding:"required"`
	BranchID            uint    `json:"branchId"            binding:"required"`
	LocationName        *string `json:"locationName"        binding:"omitempty,min=1,max=100"`
	LocationDescription *string `json:"locationDescription" binding:"omitempty,max=500"`
}

// LocationListRequest 区域列表查询参数
type LocationListRequest struct {
	BranchID uint `form:"branchId" binding:"required"`
}

// DeleteLocationRequest 删除区域查询参数
type DeleteLocationRequest struct {
	LocationID uint `form:"locationId" binding:"required"`
	BranchID   uint `form:"branchId"   binding:"required"`
}

// LocationResponse 单个区域响应
type LocationResponse struct {
	Location *model.Location `json:"location"`
}

// LocationListResponse 区域列表响应
type LocationListResponse struct {
	Locations []model.Location `json:"locations"`
}

package dto

import "lavtracker/backend/internal/model"

// ── 清洁流程 DTO ──

// CleanRequest 提交清洁记录请求
type CleanRequest struct {
	BathroomID uint      `json:"bathroomId" binding:"required"`
	Tasks      []TaskRef `json:"tasks"      binding:"required"`
	Code       string    `json:"code"       binding:"required"`
}

// CleanResponse 清洁完成响应
type CleanResponse struct {
	Cleanings []model.Cleaning `json:"cleanings"` // 该卫生间最近 10 条
	Bathrooms []model.Bathroom `json:"bathrooms"` // 所在区域的卫生间视图
}

// ValidateCodeRequest 清洁码校验请求
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateCodeResponse 清洁码校验结果
type ValidateCodeResponse struct {
	Valid  bool   `json:"valid"`
	UserID uint   `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
}

package dto

import "lavtracker/backend/internal/model"

// ── 分支模块 DTO ──

// CreateBranchRequest 创建分支请求
// 通知邮箱为逗号分隔的地址列表
type CreateBranchRequest struct {
	Name                 string `json:"name"                 binding:"required,min=1,max=100"`
	Address              string `json:"address"              binding:"omitempty,max=200"`
	ToNotificationEmails string `json:"toNotificationEmails" binding:"omitempty,max=500"`
	CcNotificationEmails string `json:"ccNotificationEmails" binding:"omitempty,max=500"`
}

// UpdateBranchRequest 更新分支请求
type UpdateBranchRequest struct {
	BranchID             uint    `json:"branchId"             binding:"required"`
	Name                 *string `json:"name"                 binding:"omitempty,min=1,max=100"`
	Address              *string `json:"address"              binding:"omitempty,max=200"`
	ToNotificationEmails *string `json:"toNotificationEmails" binding:"omitempty,max=500"`
	CcNotificationEmails *string `json:"ccNotificationEmails" binding:"omitempty,max=500"`
}

// DeleteBranchRequest 删除分支查询参数
type DeleteBranchRequest struct {
	BranchID uint `form:"branchId" binding:"required"`
}

// BranchResponse 单个分支响应
type BranchResponse struct {
	Branch *model.Branch `json:"branch"`
}

// BranchListResponse 分支树响应
type BranchListResponse struct {
	Branches []model.Branch `json:"branches"`
}

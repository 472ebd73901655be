package dto

import "lavtracker/backend/internal/model"

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
// code 为空表示该用户不参与清洁签到
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=1,max=100"`
	Email    string  `json:"email"    binding:"required,email,max=255"`
	Code     *string `json:"code"     binding:"omitempty,len=4,numeric"`
	Password string  `json:"password" binding:"omitempty,min=8,max=72"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	UserID   uint    `json:"userId"   binding:"required"`
	Username string  `json:"username" binding:"required,min=1,max=100"`
	Email    string  `json:"email"    binding:"required,email,max=255"`
	Code     *string `json:"code"     binding:"omitempty,len=4,numeric"`
	IsAdmin  *bool   `json:"isAdmin"`
	Active   *bool   `json:"active"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// DeleteUserRequest 删除用户查询参数
type DeleteUserRequest struct {
	UserID uint `form:"userId" binding:"required"`
}

// UserListResponse 用户列表响应
type UserListResponse struct {
	Users []model.User `json:"users"`
}

// UserResponse 单个用户响应
type UserResponse struct {
	User *model.User `json:"user"`
}

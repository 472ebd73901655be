package dto

import "lavtracker/backend/internal/model"

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int         `json:"expiresIn"` // Access Token 有效期（秒）
	User        *model.User `json:"user"`
}

// Caller 当前请求的调用方（由认证中间件写入上下文）
type Caller struct {
	UserID  uint
	IsAdmin bool
}

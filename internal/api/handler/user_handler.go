package handler

import (
	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 用户列表
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, dto.UserListResponse{Users: users})
}

// CreateUser 创建用户
// POST /api/users
// 尚无用户时允许匿名调用（首个用户成为管理员），之后仅管理员可调用
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req, "username and email are required") {
		return
	}

	users, err := h.userSvc.Create(c.Request.Context(), &req, CurrentCaller(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.CreatedWithMessage(c, "User created successfully.", dto.UserListResponse{Users: users})
}

// UpdateUser 更新用户
// PATCH /api/users
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req, "userId, username and email are required") {
		return
	}

	users, err := h.userSvc.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "User updated successfully.", dto.UserListResponse{Users: users})
}

// DeleteUser 删除用户
// DELETE /api/users?userId=
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var req dto.DeleteUserRequest
	if !bindQuery(c, &req, "userId is required") {
		return
	}

	users, err := h.userSvc.Delete(c.Request.Context(), req.UserID, CurrentCaller(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "User deleted successfully.", dto.UserListResponse{Users: users})
}

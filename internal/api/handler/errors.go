package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/response"
)

// handleServiceError 将 Service 层业务错误映射为 HTTP 状态码与业务码
// 未识别的错误记入 c.Errors（由日志中间件输出）并返回 500
func handleServiceError(c *gin.Context, err error) {
	switch {
	// ── 认证 ──
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "Invalid email or password")
	case errors.Is(err, service.ErrUserInactive):
		response.Forbidden(c, 11002, "User is inactive")
	case errors.Is(err, service.ErrSessionRequired):
		response.Unauthorized(c, 10002, "Unauthorized")
	case errors.Is(err, service.ErrAdminRequired):
		response.Forbidden(c, 10003, "Forbidden")

	// ── 用户 ──
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "User not found")
	case errors.Is(err, service.ErrCodeExists):
		response.Conflict(c, 20002, "Code already in use")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 20003, "Email already in use")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.BadRequest(c, 20004, "You cannot delete your own account")

	// ── 目录 ──
	case errors.Is(err, service.ErrBranchNotFound):
		response.NotFound(c, 21001, "Branch not found")
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 22001, "Location not found")
	case errors.Is(err, service.ErrBathroomNotFound):
		response.NotFound(c, 23001, "Bathroom not found")
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 24001, "Task not found")

	// ── 清洁 / 巡检 ──
	case errors.Is(err, service.ErrInvalidCode):
		response.BadRequest(c, 25001, "Invalid code")
	case errors.Is(err, service.ErrInvalidImage):
		response.BadRequest(c, 26001, "Invalid image data")
	case errors.Is(err, service.ErrNoInspectionItems):
		response.BadRequest(c, 26003, "At least one inspection item is required")
	case errors.Is(err, service.ErrReminderInProgress):
		response.Conflict(c, 26002, "Reminder sweep already running")

	// ── 设置 / 导出 ──
	case errors.Is(err, service.ErrInvalidTheme):
		response.BadRequest(c, 27001, "Invalid theme selection")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 28001, "Invalid date range")

	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

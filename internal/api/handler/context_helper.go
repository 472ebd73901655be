package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lavtracker/backend/internal/api/middleware"
	"lavtracker/backend/internal/dto"
	"lavtracker/backend/pkg/jwt"
	"lavtracker/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, 10002, "Unauthorized")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "Unauthorized")
		return 0, false
	}
	return id, true
}

// CurrentCaller 返回当前调用方，匿名请求返回 nil
func CurrentCaller(c *gin.Context) *dto.Caller {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return nil
	}
	return &dto.Caller{UserID: id, IsAdmin: c.GetString(middleware.ContextRole) == jwt.RoleAdmin}
}

// currentClaims 返回认证中间件解析出的 Claims
func currentClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// bindJSON 绑定 JSON 请求体，失败时写入 400（请求体超限为 413）
func bindJSON(c *gin.Context, obj interface{}, message string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			return false
		}
		response.BadRequest(c, 10001, message)
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时写入 400
func bindQuery(c *gin.Context, obj interface{}, message string) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.BadRequest(c, 10001, message)
		return false
	}
	return true
}

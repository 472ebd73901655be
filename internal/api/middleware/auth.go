package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"lavtracker/backend/pkg/jwt"
	"lavtracker/backend/pkg/response"
)

// 上下文键
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// TokenBlacklist 已吊销 Token 查询
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// blacklist 为 nil 时不检查吊销状态
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, 10002, "Unauthorized")
			c.Abort()
			return
		}

		claims, ok := verify(c, jwtMgr, blacklist, token)
		if !ok {
			response.Unauthorized(c, 10002, "Unauthorized")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 可选认证：携带有效 Token 时注入用户信息，否则匿名放行
func OptionalJWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, ok := verify(c, jwtMgr, blacklist, token); ok {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			response.Unauthorized(c, 10002, "Unauthorized")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "Forbidden")
		c.Abort()
	}
}

// RequireAdmin 仅管理员可访问
func RequireAdmin() gin.HandlerFunc {
	return RoleAuth(jwt.RoleAdmin)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// verify 解析 Token 并检查黑名单；Redis 出错时降级放行
func verify(c *gin.Context, jwtMgr *jwt.Manager, blacklist TokenBlacklist, token string) (*jwt.Claims, bool) {
	claims, err := jwtMgr.ParseToken(token)
	if err != nil {
		return nil, false
	}
	if blacklist != nil && claims.ID != "" {
		revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
		if err == nil && revoked {
			return nil, false
		}
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
}

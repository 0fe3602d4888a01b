package handler

import (
	"github.com/gin-gonic/gin"

	"intern-hub/backend/internal/authz"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetActor 从 Gin 上下文中提取授权主体（user_id + role）。
func MustGetActor(c *gin.Context) (authz.Actor, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return authz.Actor{}, false
	}
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return authz.Actor{}, false
	}
	role, ok := v.(model.Role)
	if !ok || !role.Valid() {
		response.Unauthorized(c, 10002, "未认证")
		return authz.Actor{}, false
	}
	return authz.Actor{ID: userID, Role: role}, true
}

// IsAdmin 判断当前请求者是否为管理员
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get("role")
	if !exists {
		return false
	}
	role, ok := v.(model.Role)
	return ok && role == model.RoleAdmin
}

package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth_identity"

// Middleware 解析请求中的令牌并挂到上下文，令牌缺失或无效时放行为匿名请求
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.Next()
			return
		}

		identity, err := ParseToken(secret, raw)
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAuth 要求已登录身份，否则返回401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := FromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证失败，请先登录"})
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求管理员能力，否则返回403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := FromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证失败，请先登录"})
			return
		}
		if !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}
		c.Next()
	}
}

// FromContext 从请求上下文取出身份
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

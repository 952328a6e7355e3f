package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mekabu-11/TODO-pair/services"
)

// SessionCookieName 会话Cookie名称
const SessionCookieName = "session_token"

// AuthMiddleware 认证中间件，从会话Cookie解析当前用户
func AuthMiddleware(store services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		uid, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// 将 uid 存储在 gin.Context 中
		c.Set("uid", uid)
		c.Next()
	}
}

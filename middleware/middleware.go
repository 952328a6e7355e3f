package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mekabu-11/TODO-pair/config"
)

// SetupMiddleware 配置中间件
func SetupMiddleware(r *gin.Engine, conf config.Config) {
	// CORS中间件，Cookie会话需要携带凭证，来源必须显式列出
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(conf.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 请求日志中间件
	r.Use(RequestLogger())
}

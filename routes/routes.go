package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mekabu-11/TODO-pair/controllers"
	"github.com/mekabu-11/TODO-pair/middleware"
	"github.com/mekabu-11/TODO-pair/services"
)

// RegisterRoutes 注册全部路由
func RegisterRoutes(r *gin.Engine, sessions services.SessionStore, sessionTTL time.Duration) {
	authController := controllers.NewAuthController(sessions, sessionTTL)
	coupleController := controllers.CoupleController{}
	taskController := controllers.TaskController{}
	commentController := controllers.CommentController{}

	// 公开路由（无需认证），登出幂等故同样公开
	public := r.Group("/api")
	{
		public.POST("/signup", authController.Signup)
		public.POST("/login", authController.Login)
		public.DELETE("/logout", authController.Logout)
	}

	// 需要认证的路由
	private := r.Group("/api")
	private.Use(middleware.AuthMiddleware(sessions)) // 应用认证中间件
	{
		private.GET("/me", authController.Me)

		// 情侣配对
		private.POST("/couples/join", coupleController.Join)
		private.GET("/couple", coupleController.Show)

		// 任务
		private.GET("/tasks", taskController.Index)
		private.POST("/tasks", taskController.Create)
		private.GET("/tasks/:id", taskController.Show)
		private.PATCH("/tasks/:id", taskController.Update)
		private.DELETE("/tasks/:id", taskController.Destroy)
		private.PATCH("/tasks/:id/complete", taskController.Complete)

		// 评论
		private.GET("/tasks/:id/comments", commentController.Index)
		private.POST("/tasks/:id/comments", commentController.Create)
		private.DELETE("/comments/:id", commentController.Destroy)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 健康检查
	r.GET("/up", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

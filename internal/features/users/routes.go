package users

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the /users endpoints. loginGuards run before the login handler.
func RegisterRoutes(router gin.IRouter, service *Service, maxUploadBytes int64, loginGuards ...gin.HandlerFunc) {
	handler := NewHandler(service, maxUploadBytes)

	users := router.Group("/users")
	{
		users.POST("/register", handler.Register)
		users.POST("/login", append(loginGuards, handler.Login)...)
		users.GET("", handler.List)
		users.GET("/uploads/:filename", handler.GetImage)
		users.GET("/:id", handler.Get)
		users.PUT("/:id", handler.Update)
		users.POST("/:id/upload", handler.UploadImage)
		users.DELETE("/:id", handler.Delete)
		users.PUT("/:id/follow", handler.Follow)
		users.PUT("/:id/unfollow", handler.Unfollow)
	}
}

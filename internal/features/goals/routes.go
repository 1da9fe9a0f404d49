// ================== internal/features/goals/routes.go ==================
package goals

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, service *Service) {
	handler := NewHandler(service)

	goals := router.Group("/api/goals")
	{
		goals.POST("", handler.Create)
		goals.GET("/user/:userId", handler.ListByUser)
		goals.GET("/user/:userId/completed", handler.ListCompleted)
		goals.GET("/user/:userId/in-progress", handler.ListInProgress)
		goals.GET("/:id", handler.Get)
		goals.PUT("/:id", handler.Update)
		goals.DELETE("/:id", handler.Delete)
	}
}

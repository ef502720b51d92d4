package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты сессии
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/session", h.getSession)
	}

	// Маршруты сигналов и откликов
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("", h.createAlert)
		alerts.GET("/:id", h.getAlert)
		alerts.PATCH("/:id/status", h.updateAlertStatus)
		alerts.GET("/:id/responses", h.listResponses)
		alerts.POST("/:id/responses", h.addResponse)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

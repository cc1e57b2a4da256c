package api

import (
	"net/http"

	"watches-backend/internal/auth/delivery"
	authdomain "watches-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := delivery.NewAuthHandler(h.authUsecase, h.config)
	authenticated := delivery.AuthMiddleware(h.authUsecase)
	adminOnly := delivery.RequireRole(authdomain.RoleAdmin)

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.GET("/me", authenticated, authHandler.Me)
			auth.POST("/logout", authHandler.Logout)
		}

		orders := api.Group("/orders")
		orders.Use(authenticated)
		{
			orders.GET("", h.orderHandler.GetOrders)
			orders.POST("", h.orderHandler.CreateOrder)
			orders.GET("/board", h.orderHandler.GetBoard)
			orders.GET("/recent", h.orderHandler.GetRecentOrders)
			orders.GET("/search", h.orderHandler.SearchOrders)
			orders.GET("/:id", h.orderHandler.GetOrderByID)
			orders.PUT("/:id/status", adminOnly, h.orderHandler.UpdateOrderStatus)
			orders.PATCH("/:id/status", adminOnly, h.orderHandler.UpdateOrderStatus)
			orders.DELETE("/:id", adminOnly, h.orderHandler.DeleteOrder)
		}

		catalog := api.Group("")
		catalog.Use(authenticated)
		{
			catalog.GET("/products", h.catalogHandler.GetProducts)
			catalog.GET("/delivery-services", h.catalogHandler.GetDeliveryServices)
			catalog.POST("/categories", adminOnly, h.catalogHandler.CreateCategory)
			catalog.POST("/products", adminOnly, h.catalogHandler.CreateProduct)
			catalog.POST("/delivery-services", adminOnly, h.catalogHandler.CreateDeliveryService)
			catalog.PUT("/products/:id/delivery", adminOnly, h.catalogHandler.AssignDelivery)
			catalog.DELETE("/products/:id/delivery", adminOnly, h.catalogHandler.RemoveDelivery)
		}

		analytics := api.Group("/analytics")
		analytics.Use(authenticated)
		{
			analytics.GET("/summary", h.analyticsHandler.GetSummary)
			analytics.GET("/sales", h.analyticsHandler.GetSales)
		}

		settings := api.Group("/settings")
		settings.Use(authenticated, adminOnly)
		{
			settings.GET("/log-level", GetLogLevel)
			settings.PUT("/log-level", UpdateLogLevel)
		}
	}
}

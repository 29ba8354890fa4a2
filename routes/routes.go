package routes

import (
	"homefood-api/handlers"
	"homefood-api/middleware"
	"homefood-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)
	}

	// ── Authenticated routes (vendor staff) ────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Orders
		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		// Menu
		auth.GET("/menu", handlers.ListMenu)

		// Reports
		auth.GET("/reports", handlers.GenerateReport)
		auth.GET("/reports/today", handlers.TodaySummary)
	}

	// ── Admin routes (menu management, accounts) ───────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/auth/register", handlers.Register)
		admin.POST("/menu", handlers.AddMenuItem)
		admin.PUT("/menu/:id", handlers.UpdateMenuItem)
		admin.DELETE("/menu/:id", handlers.DeleteMenuItem)
		admin.POST("/menu/reset-availability", handlers.ResetAvailability)
	}
}

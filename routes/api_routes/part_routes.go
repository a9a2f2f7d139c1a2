package api_routes

import (
	"github.com/anuntech/racaforte-backend-sub000/controllers/part_controller"
	"github.com/anuntech/racaforte-backend-sub000/middleware"
	"github.com/gin-gonic/gin"
)

func SetupPartRoutes(rg *gin.RouterGroup) {
	part := rg.Group("/parts")

	// ════════════════════════════════════════════════════════════
	// Public Routes
	// ════════════════════════════════════════════════════════════
	part.GET("", part_controller.GetParts)
	part.GET("/stats", part_controller.GetPartStats)
	part.GET("/:id", part_controller.GetPartByID)
	part.GET("/:id/label", part_controller.GetPartLabel)

	// ════════════════════════════════════════════════════════════
	// Protected Routes
	// ════════════════════════════════════════════════════════════
	protected := part.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", part_controller.CreatePart)
		protected.PATCH("/:id", part_controller.UpdatePart)
		protected.DELETE("/:id", part_controller.DeletePart)

		// Pricing and auto-fill call paid providers
		protected.POST("/price-lookup", part_controller.PriceLookup)
		protected.POST("/:id/process", part_controller.ProcessPart)
	}
}

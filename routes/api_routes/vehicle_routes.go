package api_routes

import (
	"github.com/anuntech/racaforte-backend-sub000/controllers/vehicle_controller"
	"github.com/anuntech/racaforte-backend-sub000/middleware"
	"github.com/gin-gonic/gin"
)

func SetupVehicleRoutes(rg *gin.RouterGroup) {
	vehicle := rg.Group("/vehicles")

	// ════════════════════════════════════════════════════════════
	// Public Routes
	// ════════════════════════════════════════════════════════════
	vehicle.GET("", vehicle_controller.GetVehicles)
	vehicle.GET("/:id", vehicle_controller.GetVehicleByID)
	vehicle.GET("/:id/parts", vehicle_controller.GetVehicleParts)

	// ════════════════════════════════════════════════════════════
	// Protected Routes
	// ════════════════════════════════════════════════════════════
	protected := vehicle.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", vehicle_controller.CreateVehicle)
		protected.PATCH("/:id", vehicle_controller.UpdateVehicle)
		protected.DELETE("/:id", vehicle_controller.DeleteVehicle)
	}
}

package api_routes

import (
	"github.com/anuntech/racaforte-backend-sub000/controllers/auth_controller"
	"github.com/anuntech/racaforte-backend-sub000/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/login", auth_controller.Login)
	auth.POST("/logout", auth_controller.Logout)

	protected := auth.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", auth_controller.Me)
	}
}

package auth_controller

import (
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/middleware"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
)

// Logout godoc
// @Summary Admin logout
// @Description Clears the admin_token cookie. Tokens are stateless and stay valid until they expire.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, "", -1, "/", "", secureCookies(), true)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}

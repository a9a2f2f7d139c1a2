package auth_controller

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/middleware"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const cookieMaxAge = 7 * 24 * 60 * 60

// Login godoc
// @Summary Admin login
// @Description Authenticate with email and password. The JWT is returned in the body and set in the admin_token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.LoginResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account suspended"
// @Router /api/v1/auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var admin models.Admin
	if err := config.Gorm.WithContext(ctx).Where("email = ?", strings.ToLower(req.Email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info().Str("email", req.Email).Msg("[auth.login] unknown email")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid email or password"))
			return
		}
		log.Error().Err(err).Msg("[auth.login] database error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	if !services.GetAuthService().VerifyPassword(admin.PasswordHash, req.Password) {
		log.Info().Str("email", req.Email).Msg("[auth.login] wrong password")
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid email or password"))
		return
	}

	if admin.Status == "suspended" {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Account is suspended"))
		return
	}

	jwtSvc := services.GetJWTService()
	if jwtSvc == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Authentication unavailable"))
		return
	}
	token, err := jwtSvc.Generate(admin.ID.String(), admin.Email)
	if err != nil {
		log.Error().Err(err).Msg("[auth.login] token generation failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	now := time.Now().UTC()
	if err := config.Gorm.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		log.Warn().Err(err).Msg("[auth.login] failed to record last login")
	}
	admin.LastLoginAt = &now

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, token, cookieMaxAge, "/", "", secureCookies(), true)

	log.Info().Str("admin_id", admin.ID.String()).Msg("[auth.login] success")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", models.LoginResponse{
		Admin: admin.ToResponse(),
		Token: token,
	}))
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}

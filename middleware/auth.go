package middleware

import (
	"net/http"
	"strings"

	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	AdminCookieName = "admin_token"

	ctxAdminID    = "adminID"
	ctxAdminEmail = "adminEmail"
)

// AuthMiddleware validates the admin JWT from the admin_token cookie or the
// Authorization header.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminCookieName)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
				c.Abort()
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token format"))
				c.Abort()
				return
			}
			token = parts[1]
		}

		jwtSvc := services.GetJWTService()
		if jwtSvc == nil {
			log.Error().Msg("[auth] jwt service not initialized")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Authentication unavailable"))
			c.Abort()
			return
		}

		claims, err := jwtSvc.Verify(token)
		if err != nil {
			log.Debug().Err(err).Msg("[auth] invalid token")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		c.Set(ctxAdminID, claims.AdminID)
		c.Set(ctxAdminEmail, claims.Email)
		c.Next()
	}
}

func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	id, exists := c.Get(ctxAdminID)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}

func GetAdminEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxAdminEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

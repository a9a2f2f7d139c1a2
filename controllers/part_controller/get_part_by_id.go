package part_controller

import (
	"errors"
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPartByID godoc
// @Summary Get a part with its vehicle
// @Tags Parts
// @Produce json
// @Param id path string true "Part ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/parts/{id} [get]
func GetPartByID(c *gin.Context) {
	id, ok := parsePartID(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var part models.Part
	if err := config.Gorm.WithContext(ctx).Preload("Vehicle").First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part fetched successfully", part))
}

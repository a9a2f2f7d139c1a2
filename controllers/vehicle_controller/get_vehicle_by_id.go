package vehicle_controller

import (
	"errors"
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetVehicleByID godoc
// @Summary Get a vehicle
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/vehicles/{id} [get]
func GetVehicleByID(c *gin.Context) {
	id, ok := parseVehicleID(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var vehicle models.Vehicle
	if err := config.Gorm.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var count int64
	if err := config.Gorm.WithContext(ctx).Model(&models.Part{}).Where("vehicle_id = ?", id).Count(&count).Error; err == nil {
		vehicle.PartsCount = &count
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicle fetched successfully", vehicle))
}

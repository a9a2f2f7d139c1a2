package vehicle_controller

import (
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// DeleteVehicle godoc
// @Summary Delete a vehicle
// @Description Fails with 409 while the vehicle still has parts.
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/vehicles/{id} [delete]
func DeleteVehicle(c *gin.Context) {
	id, ok := parseVehicleID(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var parts int64
	if err := config.Gorm.WithContext(ctx).Model(&models.Part{}).Where("vehicle_id = ?", id).Count(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if parts > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Vehicle still has parts; delete them first"))
		return
	}

	result := config.Gorm.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		log.Error().Err(result.Error).Str("vehicle_id", id.String()).Msg("[vehicle.delete] failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete vehicle"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
		return
	}

	cache.InvalidateVehicles()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicle deleted successfully", gin.H{"id": id}))
}

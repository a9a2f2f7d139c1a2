package vehicle_controller

import (
	"errors"
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UpdateVehicle godoc
// @Summary Update a vehicle
// @Description Partial update; only the fields sent are changed.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param vehicle body models.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/vehicles/{id} [patch]
func UpdateVehicle(c *gin.Context) {
	id, ok := parseVehicleID(c)
	if !ok {
		return
	}

	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	updates := req.Updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
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

	if req.InternalID != nil && *req.InternalID != vehicle.InternalID {
		var taken int64
		config.Gorm.WithContext(ctx).Model(&models.Vehicle{}).Where("internal_id = ? AND id <> ?", *req.InternalID, id).Count(&taken)
		if taken > 0 {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "A vehicle with this internal_id already exists"))
			return
		}
	}

	if err := config.Gorm.WithContext(ctx).Model(&vehicle).Updates(updates).Error; err != nil {
		log.Error().Err(err).Str("vehicle_id", id.String()).Msg("[vehicle.update] failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update vehicle"))
		return
	}

	if err := config.Gorm.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload vehicle"))
		return
	}

	cache.InvalidateVehicles()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicle updated successfully", vehicle))
}

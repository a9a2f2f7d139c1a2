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

// CreateVehicle godoc
// @Summary Create a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle body models.VehicleRequest true "Vehicle details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/vehicles [post]
func CreateVehicle(c *gin.Context) {
	var req models.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var existing models.Vehicle
	err := config.Gorm.WithContext(ctx).Select("id").Where("internal_id = ?", req.InternalID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A vehicle with this internal_id already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("[vehicle.create] lookup failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	vehicle := req.ToVehicle()
	if err := config.Gorm.WithContext(ctx).Create(&vehicle).Error; err != nil {
		log.Error().Err(err).Msg("[vehicle.create] insert failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create vehicle"))
		return
	}

	cache.InvalidateVehicles()
	log.Info().Str("vehicle_id", vehicle.ID.String()).Str("internal_id", vehicle.InternalID).Msg("[vehicle.create] created")

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Vehicle created successfully", vehicle))
}

package vehicle_controller

import (
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
)

// GetVehicleParts godoc
// @Summary List the parts of a vehicle
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/vehicles/{id}/parts [get]
func GetVehicleParts(c *gin.Context) {
	id, ok := parseVehicleID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var exists int64
	if err := config.Gorm.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
		return
	}

	query := config.Gorm.WithContext(ctx).Model(&models.Part{}).Where("vehicle_id = ?", id)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count parts"))
		return
	}

	parts := make([]models.Part, 0)
	if err := query.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&parts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch parts"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Parts fetched successfully", parts, models.NewPagination(page, limit, total)))
}

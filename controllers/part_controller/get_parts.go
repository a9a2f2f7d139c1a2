package part_controller

import (
	"net/http"
	"strings"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GetParts godoc
// @Summary List parts
// @Description Paginated parts, newest first, with optional filters.
// @Tags Parts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param vehicle_id query string false "Only parts of this vehicle"
// @Param condition query string false "BOA, MEDIA or RUIM"
// @Param q query string false "Search in name and description"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/parts [get]
func GetParts(c *gin.Context) {
	page, limit := pagination(c)

	var vehicleID *uuid.UUID
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid vehicle_id"))
			return
		}
		vehicleID = &id
	}
	condition := strings.ToUpper(c.Query("condition"))
	if condition != "" && !models.ValidCondition(condition) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "condition must be BOA, MEDIA or RUIM"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.Gorm.WithContext(ctx).Model(&models.Part{})
	if vehicleID != nil {
		query = query.Where("vehicle_id = ?", *vehicleID)
	}
	if condition != "" {
		query = query.Where("condition = ?", condition)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error().Err(err).Msg("[part.list] count failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count parts"))
		return
	}

	parts := make([]models.Part, 0)
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Preload("Vehicle", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, internal_id, brand, model, year")
		}).
		Find(&parts).Error; err != nil {
		log.Error().Err(err).Msg("[part.list] fetch failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch parts"))
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Parts fetched successfully", parts, models.NewPagination(page, limit, total)))
}

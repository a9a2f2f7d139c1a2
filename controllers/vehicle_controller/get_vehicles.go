package vehicle_controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GetVehicles godoc
// @Summary List vehicles
// @Description Paginated vehicles with their part counts. q searches brand, model, plate and internal_id.
// @Tags Vehicles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param q query string false "Search term"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/vehicles [get]
func GetVehicles(c *gin.Context) {
	page, limit := pagination(c)
	search := strings.TrimSpace(c.Query("q"))
	key := fmt.Sprintf("%d:%d:%s", page, limit, strings.ToLower(search))

	if entry, ok := cache.GetVehicles(key); ok {
		c.JSON(http.StatusOK, models.PaginatedResponse(c, "Vehicles fetched successfully", entry.Vehicles, models.NewPagination(page, limit, entry.Total)))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.Gorm.WithContext(ctx).Model(&models.Vehicle{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("brand ILIKE ? OR model ILIKE ? OR plate ILIKE ? OR internal_id ILIKE ?", like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error().Err(err).Msg("[vehicle.list] count failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count vehicles"))
		return
	}

	vehicles := make([]models.Vehicle, 0)
	if err := query.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&vehicles).Error; err != nil {
		log.Error().Err(err).Msg("[vehicle.list] fetch failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch vehicles"))
		return
	}

	if err := attachPartCounts(c, vehicles); err != nil {
		log.Error().Err(err).Msg("[vehicle.list] part counts failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count vehicle parts"))
		return
	}

	cache.SetVehicles(key, cache.VehicleListEntry{Vehicles: vehicles, Total: total})
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Vehicles fetched successfully", vehicles, models.NewPagination(page, limit, total)))
}

func attachPartCounts(c *gin.Context, vehicles []models.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}

	var rows []struct {
		VehicleID uuid.UUID
		Count     int64
	}
	if err := config.Gorm.WithContext(c.Request.Context()).
		Model(&models.Part{}).
		Select("vehicle_id, COUNT(*) AS count").
		Where("vehicle_id IN ?", ids).
		Group("vehicle_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.VehicleID] = r.Count
	}
	for i := range vehicles {
		n := counts[vehicles[i].ID]
		vehicles[i].PartsCount = &n
	}
	return nil
}

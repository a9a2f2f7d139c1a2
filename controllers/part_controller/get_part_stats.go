package part_controller

import (
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const partStatsQuery = `
	SELECT
		COUNT(*),
		COUNT(suggested_price),
		COALESCE(AVG(suggested_price), 0)::float8,
		COALESCE(SUM(suggested_price), 0)::float8,
		COUNT(*) FILTER (WHERE condition = 'BOA'),
		COUNT(*) FILTER (WHERE condition = 'MEDIA'),
		COUNT(*) FILTER (WHERE condition = 'RUIM'),
		(SELECT COUNT(*) FROM vehicles)
	FROM parts
`

// GetPartStats godoc
// @Summary Inventory statistics
// @Description Part counts by condition, priced vs unpriced parts and total stock value.
// @Tags Parts
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/parts/stats [get]
func GetPartStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var (
		stats             models.PartStatsResponse
		good, medium, bad int64
	)
	err := config.DB.QueryRow(ctx, partStatsQuery).Scan(
		&stats.TotalParts,
		&stats.PricedParts,
		&stats.AverageSuggestedPrice,
		&stats.TotalStockValue,
		&good, &medium, &bad,
		&stats.TotalVehicles,
	)
	if err != nil {
		log.Error().Err(err).Msg("[part.stats] query failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to compute part statistics"))
		return
	}

	stats.UnpricedParts = stats.TotalParts - stats.PricedParts
	stats.ByCondition = map[string]int64{
		models.ConditionGood:   good,
		models.ConditionMedium: medium,
		models.ConditionBad:    bad,
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part statistics fetched successfully", stats))
}

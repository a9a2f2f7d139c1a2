package part_controller

import (
	"context"
	"net/http"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PriceLookup godoc
// @Summary Ad-hoc price lookup
// @Description Searches marketplaces for a part and returns the price range with the listings that backed it. Nothing is stored.
// @Tags Parts
// @Accept json
// @Produce json
// @Param body body models.PriceLookupRequest true "Part and optional vehicle"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "code NO_ADS_FOUND"
// @Failure 422 {object} models.ApiResponse "code INVALID_PRICES"
// @Failure 502 {object} models.ApiResponse "code SEARCH_FAILED"
// @Router /api/v1/parts/price-lookup [post]
func PriceLookup(c *gin.Context) {
	var req models.PriceLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	if deps.Prices == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Price lookup is not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	result, filtering, err := deps.Prices.Lookup(ctx, services.PriceQuery{
		PartName:            req.PartName,
		PartDescription:     req.PartDescription,
		VehicleBrand:        req.VehicleBrand,
		VehicleModel:        req.VehicleModel,
		VehicleYear:         req.VehicleYear,
		Generic:             req.Generic,
		MaxPriceVariation:   req.MaxPriceVariation,
		MinConfidence:       req.MinConfidence,
		IncludeGenericParts: req.IncludeGenericParts,
	})
	if err != nil {
		log.Warn().Err(err).Str("part_name", req.PartName).Msg("[part.price_lookup] failed")
		respondPriceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Prices calculated successfully", gin.H{
		"prices":    result.Prices,
		"ads":       result.Ads,
		"filtering": filtering,
	}))
}

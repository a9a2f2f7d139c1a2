package part_controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProcessPart godoc
// @Summary Auto-fill a part
// @Description Looks up the market price and asks the LLM for description, dimensions, weight and compatibility, all concurrently. The price is mandatory; other fields that fail are reported in field_errors and left unchanged.
// @Tags Parts
// @Accept json
// @Produce json
// @Param id path string true "Part ID"
// @Param body body models.ProcessPartRequest false "Set generic to search without vehicle details"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 422 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /api/v1/parts/{id}/process [post]
func ProcessPart(c *gin.Context) {
	id, ok := parsePartID(c)
	if !ok {
		return
	}

	var req models.ProcessPartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}
	}
	if deps.Enricher == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Part processing is not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
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

	var vehicle models.Vehicle
	if part.Vehicle != nil {
		vehicle = *part.Vehicle
	}

	start := time.Now()
	enrichment, err := deps.Enricher.Enrich(ctx, part, vehicle, req.Generic)
	if err != nil {
		log.Warn().Err(err).Str("part_id", id.String()).Bool("generic", req.Generic).Msg("[part.process] price lookup failed")
		respondPriceError(c, err)
		return
	}

	enrichment.Apply(&part)
	processedAt := time.Now().UTC()
	part.ProcessedAt = &processedAt

	if err := config.Gorm.WithContext(ctx).Omit("Vehicle").Save(&part).Error; err != nil {
		log.Error().Err(err).Str("part_id", id.String()).Msg("[part.process] save failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save processed part"))
		return
	}

	log.Info().
		Str("part_id", id.String()).
		Float64("suggested_price", enrichment.Prices.Prices.SuggestedPrice).
		Int("field_errors", len(enrichment.FieldErrors)).
		Dur("took", time.Since(start)).
		Msg("[part.process] done")

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part processed successfully", gin.H{
		"part":         part,
		"filtering":    enrichment.Filtering,
		"field_errors": enrichment.FieldErrors,
	}))
}

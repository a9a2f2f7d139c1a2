package part_controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GetPartLabel godoc
// @Summary Printable part label
// @Description PDF with part identification, stock address, suggested price and a QR code linking to the part.
// @Tags Parts
// @Produce application/pdf
// @Param id path string true "Part ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/parts/{id}/label [get]
func GetPartLabel(c *gin.Context) {
	id, ok := parsePartID(c)
	if !ok {
		return
	}
	if deps.Labels == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Labels are not configured"))
		return
	}

	ctx, cancel := config.WithTimeout()
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

	pdf, err := deps.Labels.PartLabelPDF(part, vehicle)
	if err != nil {
		log.Error().Err(err).Str("part_id", id.String()).Msg("[part.label] render failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate label"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="etiqueta-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

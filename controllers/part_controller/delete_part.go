package part_controller

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

// DeletePart godoc
// @Summary Delete a part
// @Description Removes the record; its image folder is deleted in the background.
// @Tags Parts
// @Produce json
// @Param id path string true "Part ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/parts/{id} [delete]
func DeletePart(c *gin.Context) {
	id, ok := parsePartID(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var part models.Part
	if err := config.Gorm.WithContext(ctx).Select("id, images").First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if err := config.Gorm.WithContext(ctx).Delete(&models.Part{}, "id = ?", id).Error; err != nil {
		log.Error().Err(err).Str("part_id", id.String()).Msg("[part.delete] failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete part"))
		return
	}

	if len(part.Images) > 0 && deps.Images != nil {
		cleanupFolder(part.ImageFolder(deps.StorageFolder))
	}

	cache.InvalidateVehicles()
	log.Info().Str("part_id", id.String()).Msg("[part.delete] deleted")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part deleted successfully", gin.H{"id": id}))
}

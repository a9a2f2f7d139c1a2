package part_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UpdatePart godoc
// @Summary Update a part
// @Description JSON body for field changes, or multipart form where an "images" field replaces every stored image.
// @Tags Parts
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Part ID"
// @Param part body models.UpdatePartRequest false "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/parts/{id} [patch]
func UpdatePart(c *gin.Context) {
	id, ok := parsePartID(c)
	if !ok {
		return
	}

	var (
		req    models.UpdatePartRequest
		images [][]byte
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}
		if form, err := c.MultipartForm(); err == nil {
			var readErr error
			if images, readErr = readImages(form.File[imageFormField]); readErr != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, readErr.Error()))
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	updates := req.Updates()
	if len(updates) == 0 && len(images) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}
	if len(images) > 0 && deps.Images == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Image storage is not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	var part models.Part
	if err := config.Gorm.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Part not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if req.VehicleID != nil && *req.VehicleID != part.VehicleID {
		var exists int64
		config.Gorm.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", *req.VehicleID).Count(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
			return
		}
	}

	var replaced []string
	if len(images) > 0 {
		prefix := fmt.Sprintf("image_%d", time.Now().Unix())
		urls, err := storeImages(ctx, images, part.ImageFolder(deps.StorageFolder), prefix)
		if err != nil {
			log.Error().Err(err).Str("part_id", id.String()).Msg("[part.update] image upload failed")
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to store images"))
			return
		}
		replaced = part.Images
		updates["images"] = models.ImageList(urls)
	}

	if err := config.Gorm.WithContext(ctx).Model(&part).Updates(updates).Error; err != nil {
		log.Error().Err(err).Str("part_id", id.String()).Msg("[part.update] failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update part"))
		return
	}
	deleteImages(replaced)

	if err := config.Gorm.WithContext(ctx).Preload("Vehicle").First(&part, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload part"))
		return
	}

	cache.InvalidateVehicles()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Part updated successfully", part))
}

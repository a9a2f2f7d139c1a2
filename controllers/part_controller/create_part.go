package part_controller

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreatePart godoc
// @Summary Create a part
// @Description Multipart form. Images are background-cleaned, then stored.
// @Tags Parts
// @Accept multipart/form-data
// @Produce json
// @Param vehicle_id formData string true "Vehicle ID"
// @Param name formData string true "Part name"
// @Param description formData string false "Description"
// @Param condition formData string false "BOA, MEDIA or RUIM" Enums(BOA, MEDIA, RUIM)
// @Param stock_address formData string false "Stock address"
// @Param observations formData string false "Observations"
// @Param images formData file false "Part images"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/parts [post]
func CreatePart(c *gin.Context) {
	start := time.Now()

	var req models.PartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File[imageFormField]
	}
	images, err := readImages(files)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	if len(images) > 0 && deps.Images == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Image storage is not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	vehicleID := uuid.MustParse(req.VehicleID)
	var vehicle models.Vehicle
	if err := config.Gorm.WithContext(ctx).Select("id").First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	part := models.Part{
		ID:           uuid.Must(uuid.NewV7()),
		VehicleID:    vehicleID,
		Name:         req.Name,
		Description:  req.Description,
		Condition:    req.Condition,
		StockAddress: req.StockAddress,
		Observations: req.Observations,
		Images:       models.ImageList{},
	}
	folder := part.ImageFolder(deps.StorageFolder)

	if len(images) > 0 {
		uploadStart := time.Now()
		urls, err := storeImages(ctx, images, folder, "image")
		if err != nil {
			log.Error().Err(err).Str("part_id", part.ID.String()).Msg("[part.create] image upload failed")
			cleanupFolder(folder)
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to store images"))
			return
		}
		part.Images = urls
		log.Debug().Int("images", len(urls)).Dur("took", time.Since(uploadStart)).Msg("[PERF] images stored")
	}

	if err := config.Gorm.WithContext(ctx).Create(&part).Error; err != nil {
		log.Error().Err(err).Str("part_id", part.ID.String()).Msg("[part.create] insert failed")
		if len(images) > 0 {
			cleanupFolder(folder)
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create part"))
		return
	}

	cache.InvalidateVehicles()
	log.Info().
		Str("part_id", part.ID.String()).
		Str("vehicle_id", vehicleID.String()).
		Dur("took", time.Since(start)).
		Msg("[part.create] created")

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Part created successfully", part))
}

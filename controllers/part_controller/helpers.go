package part_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/pricing"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parsePartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid part ID"))
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// respondPriceError maps a failed price lookup to its HTTP answer.
func respondPriceError(c *gin.Context, err error) {
	switch kind := pricing.KindOf(err); kind {
	case pricing.KindNoAdsFound:
		c.JSON(http.StatusNotFound, models.ErrorResponseWithCode(c, string(kind), "No matching listings found for this part"))
	case pricing.KindInvalidPrices:
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponseWithCode(c, string(kind), "Listings found but none had a valid price"))
	default:
		if errors.Is(err, services.ErrSearchFailed) {
			c.JSON(http.StatusBadGateway, models.ErrorResponseWithCode(c, "SEARCH_FAILED", "Marketplace search is unavailable"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Price lookup failed"))
	}
}

package services

import (
	"context"
	"errors"
	"sync"

	"github.com/anuntech/racaforte-backend-sub000/filter"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/pricing"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// PriceLooker is the price side of enrichment.
type PriceLooker interface {
	Lookup(ctx context.Context, q PriceQuery) (pricing.Result, filter.FilteringResult, error)
}

// PartAdvisor estimates the descriptive fields of a part.
type PartAdvisor interface {
	GenerateDescription(ctx context.Context, part PartContext) (string, error)
	EstimateDimensions(ctx context.Context, part PartContext) (models.Dimensions, error)
	EstimateWeight(ctx context.Context, part PartContext) (float64, error)
	FindCompatibility(ctx context.Context, part PartContext) ([]models.Compatibility, error)
}

var ErrLLMNotConfigured = errors.New("llm provider not configured")

// Enrichment field names used in FieldErrors.
const (
	FieldDescription   = "description"
	FieldDimensions    = "dimensions"
	FieldWeight        = "weight"
	FieldCompatibility = "compatibility"
)

// Enrichment is everything learned about a part in one pass. Fields that
// failed are nil and listed in FieldErrors.
type Enrichment struct {
	Prices        pricing.Result         `json:"prices"`
	Filtering     filter.FilteringResult `json:"filtering"`
	Description   *string                `json:"description,omitempty"`
	Dimensions    *models.Dimensions     `json:"dimensions,omitempty"`
	Weight        *float64               `json:"weight,omitempty"`
	Compatibility []models.Compatibility `json:"compatibility,omitempty"`
	FieldErrors   map[string]string      `json:"field_errors,omitempty"`
}

type PartEnrichmentService struct {
	prices  PriceLooker
	advisor PartAdvisor
}

// NewPartEnrichmentService wires the collaborators. advisor may be nil when
// no LLM is configured; every descriptive field then reports an error.
func NewPartEnrichmentService(prices PriceLooker, advisor PartAdvisor) *PartEnrichmentService {
	return &PartEnrichmentService{prices: prices, advisor: advisor}
}

// Enrich runs the price lookup and every LLM estimate concurrently. A price
// failure fails the whole call; any other failure only drops its field.
func (s *PartEnrichmentService) Enrich(ctx context.Context, part models.Part, vehicle models.Vehicle, generic bool) (Enrichment, error) {
	pc := PartContext{
		Name:         part.Name,
		Description:  part.Description,
		Condition:    part.Condition,
		VehicleBrand: vehicle.Brand,
		VehicleModel: vehicle.Model,
		VehicleYear:  vehicle.Year,
	}
	query := PriceQuery{
		PartName:        part.Name,
		PartDescription: part.Description,
		VehicleBrand:    vehicle.Brand,
		VehicleModel:    vehicle.Model,
		VehicleYear:     vehicle.Year,
		Generic:         generic,
	}

	var (
		out      Enrichment
		priceErr error
		mu       sync.Mutex
		wg       sync.WaitGroup
	)
	out.FieldErrors = map[string]string{}

	fail := func(field string, err error) {
		mu.Lock()
		out.FieldErrors[field] = err.Error()
		mu.Unlock()
		log.Warn().Err(err).Str("part_id", part.ID.String()).Str("field", field).Msg("[part.enrich] field failed")
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		result, filtering, err := s.prices.Lookup(ctx, query)
		mu.Lock()
		defer mu.Unlock()
		out.Prices, out.Filtering, priceErr = result, filtering, err
	}()
	go func() {
		defer wg.Done()
		if s.advisor == nil {
			fail(FieldDescription, ErrLLMNotConfigured)
			return
		}
		desc, err := s.advisor.GenerateDescription(ctx, pc)
		if err != nil {
			fail(FieldDescription, err)
			return
		}
		mu.Lock()
		out.Description = &desc
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		if s.advisor == nil {
			fail(FieldDimensions, ErrLLMNotConfigured)
			return
		}
		dims, err := s.advisor.EstimateDimensions(ctx, pc)
		if err != nil {
			fail(FieldDimensions, err)
			return
		}
		mu.Lock()
		out.Dimensions = &dims
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		if s.advisor == nil {
			fail(FieldWeight, ErrLLMNotConfigured)
			return
		}
		weight, err := s.advisor.EstimateWeight(ctx, pc)
		if err != nil {
			fail(FieldWeight, err)
			return
		}
		mu.Lock()
		out.Weight = &weight
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		if s.advisor == nil {
			fail(FieldCompatibility, ErrLLMNotConfigured)
			return
		}
		list, err := s.advisor.FindCompatibility(ctx, pc)
		if err != nil {
			fail(FieldCompatibility, err)
			return
		}
		mu.Lock()
		out.Compatibility = list
		mu.Unlock()
	}()
	wg.Wait()

	if priceErr != nil {
		return Enrichment{Filtering: out.Filtering}, priceErr
	}
	if len(out.FieldErrors) == 0 {
		out.FieldErrors = nil
	}
	return out, nil
}

// Apply copies the successful enrichment fields onto part.
func (e Enrichment) Apply(part *models.Part) {
	lo, mid, hi := e.Prices.Prices.MinPrice, e.Prices.Prices.SuggestedPrice, e.Prices.Prices.MaxPrice
	part.MinPrice = &lo
	part.SuggestedPrice = &mid
	part.MaxPrice = &hi

	ads := make([]models.AdReference, len(e.Prices.Ads))
	for i, ad := range e.Prices.Ads {
		ads[i] = models.AdReference{Title: ad.Title, Price: ad.Price, URL: ad.URL}
	}
	part.Ads = ads

	if e.Description != nil {
		part.Description = *e.Description
	}
	if e.Dimensions != nil {
		dims := datatypes.NewJSONType(*e.Dimensions)
		part.Dimensions = &dims
	}
	if e.Weight != nil {
		w := *e.Weight
		part.Weight = &w
	}
	if e.Compatibility != nil {
		part.Compatibility = e.Compatibility
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anuntech/racaforte-backend-sub000/filter"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/pricing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLooker struct {
	result pricing.Result
	err    error
	got    PriceQuery
}

func (f *fakeLooker) Lookup(_ context.Context, q PriceQuery) (pricing.Result, filter.FilteringResult, error) {
	f.got = q
	return f.result, filter.FilteringResult{TotalProcessed: 7}, f.err
}

type fakeAdvisor struct {
	weightErr error
}

func (fakeAdvisor) GenerateDescription(context.Context, PartContext) (string, error) {
	return "Farol original em bom estado", nil
}

func (fakeAdvisor) EstimateDimensions(context.Context, PartContext) (models.Dimensions, error) {
	return models.Dimensions{Width: 45, Height: 20, Depth: 30, Unit: "cm"}, nil
}

func (f fakeAdvisor) EstimateWeight(context.Context, PartContext) (float64, error) {
	if f.weightErr != nil {
		return 0, f.weightErr
	}
	return 2.5, nil
}

func (fakeAdvisor) FindCompatibility(context.Context, PartContext) ([]models.Compatibility, error) {
	return []models.Compatibility{{Brand: "Fiat", Model: "Siena", Year: "2008-2014"}}, nil
}

var (
	testVehicle = models.Vehicle{Brand: "Fiat", Model: "Palio", Year: 2012}
	testPart    = models.Part{ID: uuid.New(), Name: "Farol Dianteiro", Condition: models.ConditionGood}
	testPrices  = pricing.Result{
		Prices: pricing.PriceTriple{MinPrice: 300, SuggestedPrice: 350, MaxPrice: 400},
		Ads:    []pricing.AdSummary{{Title: "Farol Palio", Price: 300, URL: "https://loja.com/1"}},
	}
)

func TestEnrich_AllFieldsSucceed(t *testing.T) {
	looker := &fakeLooker{result: testPrices}
	svc := NewPartEnrichmentService(looker, fakeAdvisor{})

	out, err := svc.Enrich(context.Background(), testPart, testVehicle, false)

	require.NoError(t, err)
	assert.Nil(t, out.FieldErrors)
	assert.Equal(t, testPrices, out.Prices)
	assert.Equal(t, 7, out.Filtering.TotalProcessed)
	require.NotNil(t, out.Description)
	require.NotNil(t, out.Weight)
	assert.Equal(t, 2.5, *out.Weight)
	assert.Len(t, out.Compatibility, 1)
	assert.Equal(t, "Palio", looker.got.VehicleModel)
	assert.False(t, looker.got.Generic)
}

func TestEnrich_FieldFailureIsIsolated(t *testing.T) {
	svc := NewPartEnrichmentService(&fakeLooker{result: testPrices}, fakeAdvisor{weightErr: errors.New("bad json")})

	out, err := svc.Enrich(context.Background(), testPart, testVehicle, true)

	require.NoError(t, err)
	assert.Nil(t, out.Weight)
	assert.Equal(t, map[string]string{FieldWeight: "bad json"}, out.FieldErrors)
	assert.NotNil(t, out.Dimensions)
}

func TestEnrich_PriceFailureIsFatal(t *testing.T) {
	svc := NewPartEnrichmentService(&fakeLooker{err: pricing.ErrNoAdsFound}, fakeAdvisor{})

	out, err := svc.Enrich(context.Background(), testPart, testVehicle, false)

	assert.ErrorIs(t, err, pricing.ErrNoAdsFound)
	assert.Nil(t, out.Description)
	assert.Equal(t, 7, out.Filtering.TotalProcessed)
}

func TestEnrich_WithoutLLM(t *testing.T) {
	svc := NewPartEnrichmentService(&fakeLooker{result: testPrices}, nil)

	out, err := svc.Enrich(context.Background(), testPart, testVehicle, false)

	require.NoError(t, err)
	assert.Len(t, out.FieldErrors, 4)
	assert.Equal(t, ErrLLMNotConfigured.Error(), out.FieldErrors[FieldDescription])
}

func TestEnrichment_Apply(t *testing.T) {
	svc := NewPartEnrichmentService(&fakeLooker{result: testPrices}, fakeAdvisor{weightErr: errors.New("x")})
	out, err := svc.Enrich(context.Background(), testPart, testVehicle, false)
	require.NoError(t, err)

	part := testPart
	part.Description = "antiga"
	weight := 9.0
	part.Weight = &weight
	out.Apply(&part)

	assert.Equal(t, 350.0, *part.SuggestedPrice)
	assert.Equal(t, "Farol original em bom estado", part.Description)
	assert.Equal(t, 9.0, *part.Weight, "failed field keeps the stored value")
	assert.Equal(t, 45.0, part.Dimensions.Data().Width)
	require.Len(t, part.Ads, 1)
	assert.Equal(t, "https://loja.com/1", part.Ads[0].URL)
}

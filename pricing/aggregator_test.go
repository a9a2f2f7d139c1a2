package pricing

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/anuntech/racaforte-backend-sub000/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adsWithPrices(prices ...float64) []filter.FilteredAd {
	ads := make([]filter.FilteredAd, len(prices))
	for i, p := range prices {
		ads[i] = filter.FilteredAd{
			Title: fmt.Sprintf("Farol Dianteiro %d", i),
			Price: p,
			URL:   fmt.Sprintf("https://loja.com/%d", i),
		}
	}
	return ads
}

func TestCalculatePricesFromAds_NoAds(t *testing.T) {
	_, err := CalculatePricesFromAds(nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAdsFound))
	assert.Equal(t, KindNoAdsFound, KindOf(err))
}

func TestCalculatePricesFromAds_InvalidPrices(t *testing.T) {
	for _, prices := range [][]float64{{-5}, {0, -1}, {math.NaN()}, {math.Inf(1)}} {
		_, err := CalculatePricesFromAds(adsWithPrices(prices...))

		require.Error(t, err, "prices %v", prices)
		assert.True(t, errors.Is(err, ErrInvalidPrices), "prices %v", prices)
		assert.Equal(t, KindInvalidPrices, KindOf(err))
	}
}

func TestCalculatePricesFromAds_Branches(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   PriceTriple
	}{
		{"single price", []float64{100}, PriceTriple{100, 100, 100}},
		{"two prices use rounded mean", []float64{100, 200}, PriceTriple{100, 150, 200}},
		{"odd count uses middle element", []float64{10, 20, 30}, PriceTriple{10, 20, 30}},
		{"even count averages middle elements", []float64{10, 20, 30, 40}, PriceTriple{10, 25, 40}},
		{"input order does not matter", []float64{30, 10, 20}, PriceTriple{10, 20, 30}},
		{"two prices round half up", []float64{10, 15}, PriceTriple{10, 13, 15}},
		{"even count rounds half up", []float64{1, 2, 3, 4}, PriceTriple{1, 3, 4}},
		{"odd count keeps fractional middle", []float64{10.5, 20.25, 30}, PriceTriple{10.5, 20.25, 30}},
		{"invalid prices are ignored", []float64{-5, 100, 0, 300}, PriceTriple{100, 200, 300}},
		{"rounding up past max is clamped", []float64{99.90, 99.95}, PriceTriple{99.90, 99.95, 99.95}},
		{"rounding down below min is clamped", []float64{10.2, 10.4}, PriceTriple{10.2, 10.2, 10.4}},
		{"even count with cents is clamped", []float64{49.7, 49.8, 49.9, 49.95}, PriceTriple{49.7, 49.95, 49.95}},
		{"cents far apart still round", []float64{99.90, 150.35}, PriceTriple{99.90, 125, 150.35}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculatePricesFromAds(adsWithPrices(tt.prices...))

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Prices)
			assert.LessOrEqual(t, result.Prices.MinPrice, result.Prices.SuggestedPrice)
			assert.LessOrEqual(t, result.Prices.SuggestedPrice, result.Prices.MaxPrice)
		})
	}
}

func TestCalculatePricesFromAds_AdsKeepInputOrder(t *testing.T) {
	ads := adsWithPrices(300, 100, 200)

	result, err := CalculatePricesFromAds(ads)

	require.NoError(t, err)
	require.Len(t, result.Ads, 3)
	for i, ad := range ads {
		assert.Equal(t, AdSummary{Title: ad.Title, Price: ad.Price, URL: ad.URL}, result.Ads[i])
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
	assert.Equal(t, KindNoAdsFound, KindOf(fmt.Errorf("lookup: %w", ErrNoAdsFound)))
}

// Package pricing turns a filtered set of marketplace ads into a
// min/suggested/max price range.
package pricing

import (
	"errors"
	"math"
	"sort"

	"github.com/anuntech/racaforte-backend-sub000/filter"
)

// ErrorKind identifies why a price range could not be computed.
type ErrorKind string

const (
	KindNoAdsFound    ErrorKind = "NO_ADS_FOUND"
	KindInvalidPrices ErrorKind = "INVALID_PRICES"
)

// Error is returned by CalculatePricesFromAds. Compare with errors.Is
// against ErrNoAdsFound and ErrInvalidPrices.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNoAdsFound    = &Error{Kind: KindNoAdsFound, Message: "no matching listings found"}
	ErrInvalidPrices = &Error{Kind: KindInvalidPrices, Message: "matching listings have no valid prices"}
)

// PriceTriple is the computed price range. MinPrice <= SuggestedPrice <= MaxPrice.
type PriceTriple struct {
	MinPrice       float64 `json:"min_price"`
	SuggestedPrice float64 `json:"suggested_price"`
	MaxPrice       float64 `json:"max_price"`
}

// AdSummary is the public view of an ad that backed a price range.
type AdSummary struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	URL   string  `json:"url"`
}

type Result struct {
	Prices PriceTriple `json:"prices"`
	Ads    []AdSummary `json:"ads"`
}

// CalculatePricesFromAds computes the price range of ads. It never returns a
// zero-valued triple in place of an error.
//
// The suggested price is the single price, the rounded mean of two prices,
// the middle element of an odd count, or the rounded mean of the two middle
// elements of an even count.
func CalculatePricesFromAds(ads []filter.FilteredAd) (Result, error) {
	if len(ads) == 0 {
		return Result{}, ErrNoAdsFound
	}

	prices := make([]float64, 0, len(ads))
	for _, ad := range ads {
		if ad.Price > 0 && !math.IsInf(ad.Price, 0) {
			prices = append(prices, ad.Price)
		}
	}
	if len(prices) == 0 {
		return Result{}, ErrInvalidPrices
	}
	sort.Float64s(prices)

	triple := PriceTriple{
		MinPrice:       prices[0],
		SuggestedPrice: suggestedPrice(prices),
		MaxPrice:       prices[len(prices)-1],
	}

	summaries := make([]AdSummary, len(ads))
	for i, ad := range ads {
		summaries[i] = AdSummary{Title: ad.Title, Price: ad.Price, URL: ad.URL}
	}

	return Result{Prices: triple, Ads: summaries}, nil
}

// suggestedPrice expects a non-empty, ascending slice. Rounding can step
// outside the range when prices carry cents, so the result is clamped to
// [min, max].
func suggestedPrice(sorted []float64) float64 {
	n := len(sorted)
	var p float64
	switch {
	case n == 1:
		return sorted[0]
	case n == 2:
		p = roundHalfUp((sorted[0] + sorted[1]) / 2)
	case n%2 == 1:
		return sorted[n/2]
	default:
		p = roundHalfUp((sorted[n/2-1] + sorted[n/2]) / 2)
	}
	return math.Min(math.Max(p, sorted[0]), sorted[n-1])
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// KindOf reports the ErrorKind carried by err, or "" when err is not a
// pricing error.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

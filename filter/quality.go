package filter

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	minTitleLength = 10
	minAdPrice     = 10.0
)

// ApplyQualityFilters drops ads with a short title, a price below 10 or a
// URL that is not http(s). Order is preserved and the filter is idempotent.
func ApplyQualityFilters(ads []FilteredAd) []FilteredAd {
	out := make([]FilteredAd, 0, len(ads))
	for _, ad := range ads {
		if utf8.RuneCountInString(ad.Title) < minTitleLength {
			continue
		}
		if !(ad.Price >= minAdPrice) {
			continue
		}
		if !strings.HasPrefix(ad.URL, "http") {
			continue
		}
		out = append(out, ad)
	}
	return out
}

// FilterByPriceRange keeps ads priced within maxVariationPercent of the
// group median. The median is sorted[n/2], which is the upper middle
// element for even-sized groups; this differs from the averaged median used
// by the price aggregator and must stay that way.
func FilterByPriceRange(ads []FilteredAd, maxVariationPercent float64) []FilteredAd {
	if len(ads) == 0 {
		return []FilteredAd{}
	}

	median := UpperMedian(ads)
	low := median * (1 - maxVariationPercent/100)
	high := median * (1 + maxVariationPercent/100)

	out := make([]FilteredAd, 0, len(ads))
	for _, ad := range ads {
		if ad.Price >= low && ad.Price <= high {
			out = append(out, ad)
		}
	}
	return out
}

// UpperMedian returns sorted(prices)[n/2]. It panics on an empty slice.
func UpperMedian(ads []FilteredAd) float64 {
	prices := make([]float64, len(ads))
	for i, ad := range ads {
		prices[i] = ad.Price
	}
	sort.Float64s(prices)
	return prices[len(prices)/2]
}

// Package filter scores scraped marketplace listings against a requested
// part and drops the ones that are irrelevant, malformed or priced too far
// from the rest of the group.
//
// Everything in this package is pure: no I/O, no logging, no shared mutable
// state. Callers own the slices they pass in and get freshly allocated
// results back.
package filter

// Match reasons attached to a scored listing.
const (
	ReasonNameMatch          = "name_match"
	ReasonKeywordMatch       = "keyword_match"
	ReasonVehicleMatch       = "vehicle_match"
	ReasonUniversalPart      = "universal_part"
	ReasonDamagedCondition   = "damaged_condition"
	ReasonIrrelevantKeywords = "irrelevant_keywords"
	ReasonInvalidPrice       = "invalid_price"
)

// DefaultMinConfidence applies when FilterCriteria leaves MinConfidence unset.
// DefaultMaxPriceVariation is never applied implicitly: the price-range pass
// only runs when the caller sets MaxPriceVariation, and 200 is the width
// callers pass to get the usual band.
const (
	DefaultMaxPriceVariation = 200.0
	DefaultMinConfidence     = 0.3
)

// RawListing is one search result as returned by the scraping API.
// Price is untrusted: zero, negative and NaN all count as missing.
type RawListing struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	URL       string  `json:"url"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Source    string  `json:"source,omitempty"`
}

// FilterCriteria describes the part a search was run for.
//
// VehicleBrand and VehicleModel are only used when both are set; leave them
// empty for a generic search. A zero MaxPriceVariation means the caller did
// not ask for price-range filtering, a zero MinConfidence falls back to
// DefaultMinConfidence and a nil IncludeGenericParts means true.
type FilterCriteria struct {
	PartName        string
	PartDescription string

	VehicleBrand string
	VehicleModel string
	VehicleYear  int

	MaxPriceVariation   float64
	MinConfidence       float64
	IncludeGenericParts *bool
}

// FilteredAd is a listing that survived relevance filtering.
type FilteredAd struct {
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	URL          string   `json:"url"`
	Confidence   float64  `json:"confidence"`
	MatchReasons []string `json:"match_reasons"`
}

// FilteringStats counts how listings fared during filtering.
type FilteringStats struct {
	ByNameMatch    int `json:"by_name_match"`
	ByKeywordMatch int `json:"by_keyword_match"`
	ByPriceRange   int `json:"by_price_range"`
	Rejected       int `json:"rejected"`
}

// FilteringResult is the report produced by FilterAds.
type FilteringResult struct {
	Ads            []FilteredAd   `json:"ads"`
	TotalProcessed int            `json:"total_processed"`
	TotalFiltered  int            `json:"total_filtered"`
	FilteringStats FilteringStats `json:"filtering_stats"`
}

// PriceVariation returns the band for FilterByPriceRange and whether the
// price-range pass is enabled at all.
func (c FilterCriteria) PriceVariation() (float64, bool) {
	return c.MaxPriceVariation, c.MaxPriceVariation > 0
}

func (c FilterCriteria) minConfidence() float64 {
	if c.MinConfidence > 0 {
		return c.MinConfidence
	}
	return DefaultMinConfidence
}

func (c FilterCriteria) includeGenericParts() bool {
	return c.IncludeGenericParts == nil || *c.IncludeGenericParts
}

func (c FilterCriteria) hasVehicle() bool {
	return c.VehicleBrand != "" && c.VehicleModel != ""
}

package filter

// minAdsForPriceRange is the number of ads that must be exceeded before the
// price-range pass runs.
const minAdsForPriceRange = 3

// Run chains relevance, quality and (when requested) price-range filtering
// the way the price lookup uses them. The returned result's Ads hold the
// final list and its stats include how many ads the price-range pass
// removed.
func Run(listings []RawListing, criteria FilterCriteria) FilteringResult {
	result := FilterAds(listings, criteria)
	ads := ApplyQualityFilters(result.Ads)

	if variation, explicit := criteria.PriceVariation(); explicit && len(ads) > minAdsForPriceRange {
		inRange := FilterByPriceRange(ads, variation)
		result.FilteringStats.ByPriceRange = len(ads) - len(inRange)
		ads = inRange
	}

	result.Ads = ads
	result.TotalFiltered = len(ads)
	return result
}

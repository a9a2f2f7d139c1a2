package filter

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Weights of each signal in the final confidence.
const (
	nameWeight      = 0.4
	keywordWeight   = 0.3
	vehicleWeight   = 0.2
	universalWeight = 0.1

	// relevanceThreshold is the per-listing bar, independent of
	// FilterCriteria.MinConfidence.
	relevanceThreshold = 0.3

	damagedPenalty      = 0.7
	universalScore      = 0.5
	maxPartialNameScore = 0.8
	minFuzzySimilarity  = 0.6
	fuzzyNameFactor     = 0.6
)

type score struct {
	confidence float64
	reasons    []string
}

// FilterAds scores every listing against criteria and returns the relevant
// ones ordered by descending confidence. Ties keep the scraped order.
func FilterAds(listings []RawListing, criteria FilterCriteria) FilteringResult {
	result := FilteringResult{
		Ads:            make([]FilteredAd, 0, len(listings)),
		TotalProcessed: len(listings),
	}

	partName := strings.ToLower(strings.TrimSpace(criteria.PartName))
	nameWords := significantWords(partName)
	keywords := keywordSet(partName, strings.ToLower(criteria.PartDescription))

	for _, listing := range listings {
		s := scoreListing(listing, criteria, partName, nameWords, keywords)
		if s.confidence < relevanceThreshold || len(s.reasons) == 0 {
			result.FilteringStats.Rejected++
			continue
		}

		result.Ads = append(result.Ads, FilteredAd{
			Title:        listing.Name,
			Price:        listing.Price,
			URL:          listing.URL,
			Confidence:   s.confidence,
			MatchReasons: s.reasons,
		})
	}

	sort.SliceStable(result.Ads, func(i, j int) bool {
		return result.Ads[i].Confidence > result.Ads[j].Confidence
	})

	minConfidence := criteria.minConfidence()
	kept := result.Ads[:0]
	for _, ad := range result.Ads {
		if ad.Confidence >= minConfidence {
			kept = append(kept, ad)
		}
	}
	result.Ads = kept
	result.TotalFiltered = len(kept)

	for _, ad := range kept {
		if hasReason(ad.MatchReasons, ReasonNameMatch) {
			result.FilteringStats.ByNameMatch++
		}
		if hasReason(ad.MatchReasons, ReasonKeywordMatch) {
			result.FilteringStats.ByKeywordMatch++
		}
	}

	return result
}

// scoreListing computes the confidence of a single listing. Order matters:
// hard rejects short-circuit, weighted signals are summed, the damage
// penalty multiplies the sum and the clamp comes last.
func scoreListing(listing RawListing, criteria FilterCriteria, partName string, nameWords, keywords []string) score {
	title := strings.ToLower(listing.Name)

	if containsAny(title, irrelevantKeywords) {
		return score{reasons: []string{ReasonIrrelevantKeywords}}
	}
	if !(listing.Price > 0) {
		return score{reasons: []string{ReasonInvalidPrice}}
	}

	var s score

	if name := nameScore(title, partName, nameWords); name > 0 {
		s.confidence += name * nameWeight
		s.reasons = append(s.reasons, ReasonNameMatch)
	}

	if kw := keywordScore(title, keywords); kw > 0 {
		s.confidence += kw * keywordWeight
		s.reasons = append(s.reasons, ReasonKeywordMatch)
	}

	if criteria.hasVehicle() {
		if v := vehicleScore(title, criteria); v > 0 {
			s.confidence += v * vehicleWeight
			s.reasons = append(s.reasons, ReasonVehicleMatch)
		}
	}

	if criteria.includeGenericParts() && containsAny(title, universalKeywords) {
		s.confidence += universalScore * universalWeight
		s.reasons = append(s.reasons, ReasonUniversalPart)
	}

	if containsAny(title, damagedKeywords) {
		s.confidence *= damagedPenalty
		s.reasons = append(s.reasons, ReasonDamagedCondition)
	}

	s.confidence = min(s.confidence, 1.0)
	return s
}

func nameScore(title, partName string, nameWords []string) float64 {
	if partName != "" && strings.Contains(title, partName) {
		return 1.0
	}

	if len(nameWords) > 0 {
		matched := 0
		for _, w := range nameWords {
			if strings.Contains(title, w) {
				matched++
			}
		}
		if matched > 0 {
			return min(float64(matched)/float64(len(nameWords)), maxPartialNameScore)
		}
	}

	if partName == "" {
		return 0
	}
	if sim := Similarity(partName, title); sim > minFuzzySimilarity {
		return sim * fuzzyNameFactor
	}
	return 0
}

func keywordScore(title string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

func vehicleScore(title string, criteria FilterCriteria) float64 {
	var v float64
	if strings.Contains(title, strings.ToLower(criteria.VehicleBrand)) {
		v += 0.4
	}
	if strings.Contains(title, strings.ToLower(criteria.VehicleModel)) {
		v += 0.4
	}
	if criteria.VehicleYear > 0 && strings.Contains(title, strconv.Itoa(criteria.VehicleYear)) {
		v += 0.2
	}
	return v
}

// significantWords splits text on whitespace and keeps words longer than
// two characters.
func significantWords(text string) []string {
	var words []string
	for _, w := range strings.Fields(text) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// keywordSet returns the distinct significant words of the given texts in
// first-seen order.
func keywordSet(texts ...string) []string {
	seen := make(map[string]struct{})
	var set []string
	for _, text := range texts {
		for _, w := range significantWords(text) {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			set = append(set, w)
		}
	}
	return set
}

func hasReason(reasons []string, reason string) bool {
	for _, r := range reasons {
		if r == reason {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/filter"
	"github.com/anuntech/racaforte-backend-sub000/pricing"
	"github.com/rs/zerolog/log"
)

var ErrSearchFailed = errors.New("marketplace search failed")

// PriceQuery describes one price lookup. Zero tunables fall back to the
// service defaults.
type PriceQuery struct {
	PartName            string
	PartDescription     string
	VehicleBrand        string
	VehicleModel        string
	VehicleYear         int
	Generic             bool
	MaxPriceVariation   float64
	MinConfidence       float64
	IncludeGenericParts *bool
}

// PriceLookupOptions are the service wide defaults.
type PriceLookupOptions struct {
	Pages               int
	MaxPriceVariation   float64
	MinConfidence       float64
	IncludeGenericParts bool
	CacheTTL            time.Duration
}

// PriceLookupService searches marketplaces and turns the listings into a
// price triple.
type PriceLookupService struct {
	searcher Searcher
	cache    cache.PriceCache
	opts     PriceLookupOptions
}

func NewPriceLookupService(searcher Searcher, priceCache cache.PriceCache, opts PriceLookupOptions) *PriceLookupService {
	if opts.Pages < 1 {
		opts.Pages = 1
	}
	return &PriceLookupService{searcher: searcher, cache: priceCache, opts: opts}
}

type cachedLookup struct {
	Result    pricing.Result         `json:"result"`
	Filtering filter.FilteringResult `json:"filtering"`
}

// Criteria builds the filter criteria for q. Generic lookups never carry
// vehicle fields.
func (s *PriceLookupService) Criteria(q PriceQuery) filter.FilterCriteria {
	c := filter.FilterCriteria{
		PartName:          q.PartName,
		PartDescription:   q.PartDescription,
		MaxPriceVariation: q.MaxPriceVariation,
		MinConfidence:     q.MinConfidence,
	}
	if !q.Generic {
		c.VehicleBrand = q.VehicleBrand
		c.VehicleModel = q.VehicleModel
		c.VehicleYear = q.VehicleYear
	}
	if c.MaxPriceVariation == 0 {
		c.MaxPriceVariation = s.opts.MaxPriceVariation
	}
	if c.MinConfidence == 0 {
		c.MinConfidence = s.opts.MinConfidence
	}
	include := s.opts.IncludeGenericParts
	if q.IncludeGenericParts != nil {
		include = *q.IncludeGenericParts
	}
	c.IncludeGenericParts = &include
	return c
}

// SearchTerm is the query sent to the marketplace search.
func SearchTerm(c filter.FilterCriteria) string {
	parts := []string{strings.TrimSpace(c.PartName)}
	if b := strings.TrimSpace(c.VehicleBrand); b != "" {
		parts = append(parts, b)
	}
	if m := strings.TrimSpace(c.VehicleModel); m != "" {
		parts = append(parts, m)
	}
	if c.VehicleYear > 0 && (c.VehicleBrand != "" || c.VehicleModel != "") {
		parts = append(parts, strconv.Itoa(c.VehicleYear))
	}
	return strings.Join(parts, " ")
}

func cacheKey(term string, c filter.FilterCriteria) string {
	raw, _ := json.Marshal(struct {
		Term     string                `json:"term"`
		Criteria filter.FilterCriteria `json:"criteria"`
	}{strings.ToLower(term), c})
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:16])
}

// Lookup runs the whole price pipeline. A pricing.Error is returned when
// the listings do not support a price; the filtering result is still
// filled in that case.
func (s *PriceLookupService) Lookup(ctx context.Context, q PriceQuery) (pricing.Result, filter.FilteringResult, error) {
	criteria := s.Criteria(q)
	term := SearchTerm(criteria)
	key := cacheKey(term, criteria)

	if s.cache != nil {
		var hit cachedLookup
		ok, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			log.Warn().Err(err).Msg("[price.lookup] cache read failed")
		} else if ok {
			log.Debug().Str("term", term).Msg("[price.lookup] cache hit")
			return hit.Result, hit.Filtering, nil
		}
	}

	start := time.Now()
	listings, err := s.fetchAll(ctx, term)
	if err != nil {
		return pricing.Result{}, filter.FilteringResult{}, err
	}

	filtering := filter.Run(listings, criteria)
	log.Info().
		Str("term", term).
		Int("processed", filtering.TotalProcessed).
		Int("filtered", filtering.TotalFiltered).
		Int("by_name", filtering.FilteringStats.ByNameMatch).
		Int("by_keyword", filtering.FilteringStats.ByKeywordMatch).
		Int("by_price_range", filtering.FilteringStats.ByPriceRange).
		Int("rejected", filtering.FilteringStats.Rejected).
		Dur("took", time.Since(start)).
		Msg("[price.lookup] listings filtered")

	result, err := pricing.CalculatePricesFromAds(filtering.Ads)
	if err != nil {
		return pricing.Result{}, filtering, err
	}

	if s.cache != nil && s.opts.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, cachedLookup{Result: result, Filtering: filtering}, s.opts.CacheTTL); err != nil {
			log.Warn().Err(err).Msg("[price.lookup] cache write failed")
		}
	}
	return result, filtering, nil
}

// fetchAll requests every page concurrently and concatenates them in page
// order. It fails only when every page failed.
func (s *PriceLookupService) fetchAll(ctx context.Context, term string) ([]filter.RawListing, error) {
	pages := make([][]filter.RawListing, s.opts.Pages)
	errs := make([]error, s.opts.Pages)

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Pages; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pages[i], errs[i] = s.searcher.Search(ctx, term, i+1)
		}(i)
	}
	wg.Wait()

	var listings []filter.RawListing
	failed := 0
	for i := range pages {
		if errs[i] != nil {
			failed++
			log.Warn().Err(errs[i]).Int("page", i+1).Str("term", term).Msg("[price.lookup] page failed")
			continue
		}
		listings = append(listings, pages[i]...)
	}
	if failed == len(pages) {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, errors.Join(errs...))
	}
	return listings, nil
}

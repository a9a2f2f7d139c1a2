package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/filter"
	"github.com/anuntech/racaforte-backend-sub000/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu    sync.Mutex
	pages map[int][]filter.RawListing
	fail  map[int]error
	terms []string
}

func (f *fakeSearcher) Search(_ context.Context, term string, page int) ([]filter.RawListing, error) {
	f.mu.Lock()
	f.terms = append(f.terms, term)
	f.mu.Unlock()
	if err := f.fail[page]; err != nil {
		return nil, err
	}
	return f.pages[page], nil
}

func (f *fakeSearcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.terms)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = raw
	return nil
}

func palioListings() map[int][]filter.RawListing {
	return map[int][]filter.RawListing{
		1: {
			{Name: "Farol Dianteiro Fiat Palio 2012", Price: 300, URL: "https://loja.com/1"},
			{Name: "Miniatura Fiat Palio escala 1:43", Price: 80, URL: "https://loja.com/2"},
		},
		2: {
			{Name: "Farol Dianteiro Fiat Palio 2012 esquerdo", Price: 400, URL: "https://loja.com/3"},
		},
	}
}

func defaultOpts() PriceLookupOptions {
	return PriceLookupOptions{Pages: 2, MinConfidence: 0.3, IncludeGenericParts: true, CacheTTL: time.Hour}
}

var palioQuery = PriceQuery{PartName: "Farol Dianteiro", VehicleBrand: "Fiat", VehicleModel: "Palio", VehicleYear: 2012}

func TestLookup_AggregatesAllPages(t *testing.T) {
	searcher := &fakeSearcher{pages: palioListings()}
	svc := NewPriceLookupService(searcher, nil, defaultOpts())

	result, filtering, err := svc.Lookup(context.Background(), palioQuery)

	require.NoError(t, err)
	assert.Equal(t, 3, filtering.TotalProcessed)
	assert.Equal(t, 2, filtering.TotalFiltered)
	assert.Equal(t, 1, filtering.FilteringStats.Rejected)
	assert.Equal(t, pricing.PriceTriple{MinPrice: 300, SuggestedPrice: 350, MaxPrice: 400}, result.Prices)
	assert.Equal(t, []string{"Farol Dianteiro Fiat Palio 2012", "Farol Dianteiro Fiat Palio 2012"}, searcher.terms)
}

func TestLookup_GenericDropsVehicle(t *testing.T) {
	searcher := &fakeSearcher{pages: palioListings()}
	svc := NewPriceLookupService(searcher, nil, defaultOpts())

	q := palioQuery
	q.Generic = true
	criteria := svc.Criteria(q)

	assert.Empty(t, criteria.VehicleBrand)
	assert.Empty(t, criteria.VehicleModel)
	assert.Zero(t, criteria.VehicleYear)
	assert.Equal(t, "Farol Dianteiro", SearchTerm(criteria))

	_, filtering, err := svc.Lookup(context.Background(), q)
	require.NoError(t, err)
	for _, ad := range filtering.Ads {
		assert.NotContains(t, ad.MatchReasons, filter.ReasonVehicleMatch)
	}
}

func TestLookup_PartialPageFailureIsTolerated(t *testing.T) {
	searcher := &fakeSearcher{pages: palioListings(), fail: map[int]error{2: errors.New("timeout")}}
	svc := NewPriceLookupService(searcher, nil, defaultOpts())

	result, _, err := svc.Lookup(context.Background(), palioQuery)

	require.NoError(t, err)
	assert.Equal(t, 300.0, result.Prices.SuggestedPrice)
}

func TestLookup_AllPagesFailing(t *testing.T) {
	boom := errors.New("timeout")
	searcher := &fakeSearcher{fail: map[int]error{1: boom, 2: boom}}
	svc := NewPriceLookupService(searcher, nil, defaultOpts())

	_, _, err := svc.Lookup(context.Background(), palioQuery)

	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.ErrorIs(t, err, boom)
}

func TestLookup_NoRelevantAds(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int][]filter.RawListing{
		1: {{Name: "Adesivo Fiat Palio", Price: 20, URL: "https://loja.com/9"}},
	}}
	svc := NewPriceLookupService(searcher, nil, PriceLookupOptions{Pages: 1})

	_, filtering, err := svc.Lookup(context.Background(), palioQuery)

	assert.ErrorIs(t, err, pricing.ErrNoAdsFound)
	assert.Equal(t, pricing.KindNoAdsFound, pricing.KindOf(err))
	assert.Equal(t, 1, filtering.TotalProcessed)
	assert.Equal(t, 1, filtering.FilteringStats.Rejected)
}

func TestLookup_UsesCache(t *testing.T) {
	searcher := &fakeSearcher{pages: palioListings()}
	store := &memoryCache{}
	svc := NewPriceLookupService(searcher, store, defaultOpts())

	first, _, err := svc.Lookup(context.Background(), palioQuery)
	require.NoError(t, err)
	calls := searcher.calls()

	second, filtering, err := svc.Lookup(context.Background(), palioQuery)
	require.NoError(t, err)

	assert.Equal(t, calls, searcher.calls(), "second lookup is served from cache")
	assert.Equal(t, first, second)
	assert.Equal(t, 2, filtering.TotalFiltered)
}

func TestCriteria_Defaults(t *testing.T) {
	svc := NewPriceLookupService(&fakeSearcher{}, nil, PriceLookupOptions{MinConfidence: 0.4, MaxPriceVariation: 50, IncludeGenericParts: false})

	c := svc.Criteria(PriceQuery{PartName: "Farol"})
	assert.Equal(t, 0.4, c.MinConfidence)
	assert.Equal(t, 50.0, c.MaxPriceVariation)
	require.NotNil(t, c.IncludeGenericParts)
	assert.False(t, *c.IncludeGenericParts)

	include := true
	c = svc.Criteria(PriceQuery{PartName: "Farol", MinConfidence: 0.7, IncludeGenericParts: &include})
	assert.Equal(t, 0.7, c.MinConfidence)
	assert.True(t, *c.IncludeGenericParts)
}

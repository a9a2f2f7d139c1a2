package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRL(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"R$ 1.234,56", 1234.56},
		{"R$ 89,90", 89.9},
		{"R$1.299", 1299},
		{"1234.56", 1234.56},
		{"12.5", 12.5},
		{"R$ 12.345.678,00", 12345678},
		{"", 0},
		{"Consulte", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseBRL(tt.in), 1e-9, "input %q", tt.in)
	}
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Farol Palio & Siena", CleanTitle("Farol <b>Palio</b> &amp; Siena"))
	assert.Equal(t, "Farol Palio", CleanTitle("  Farol   Palio \n"))
}

func TestScraperSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "farol dianteiro fiat palio", q.Get("query"))
		assert.Equal(t, "2", q.Get("page"))

		_, _ = w.Write([]byte(`{"results":[
			{"name":"Farol Dianteiro Fiat Palio","price":350.5,"url":"https://loja.com/1","thumbnail":"https://img/1","source":"Loja A"},
			{"title":"Farol &amp; Lanterna Palio","price":"R$ 1.200,00","link":"https://loja.com/2","rating":4.5},
			{"name":"Farol sem preço","price":null,"url":"https://loja.com/3"}
		]}`))
	}))
	defer srv.Close()

	svc := NewScraperService("test-key", srv.URL, time.Second)
	listings, err := svc.Search(context.Background(), "farol dianteiro fiat palio", 2)

	require.NoError(t, err)
	assert.Equal(t, []filter.RawListing{
		{Name: "Farol Dianteiro Fiat Palio", Price: 350.5, URL: "https://loja.com/1", Thumbnail: "https://img/1", Source: "Loja A"},
		{Name: "Farol & Lanterna Palio", Price: 1200, URL: "https://loja.com/2", Rating: 4.5},
		{Name: "Farol sem preço", Price: 0, URL: "https://loja.com/3"},
	}, listings)
}

func TestScraperSearch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewScraperService("test-key", srv.URL, time.Second).Search(context.Background(), "x", 1)
	assert.Error(t, err)
}

func TestScraperSearch_NotConfigured(t *testing.T) {
	_, err := NewScraperService("", "http://unused", time.Second).Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrScraperNotConfigured)
}

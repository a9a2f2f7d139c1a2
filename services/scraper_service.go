package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anuntech/racaforte-backend-sub000/filter"
)

// Searcher returns one page of marketplace listings for a search term.
type Searcher interface {
	Search(ctx context.Context, term string, page int) ([]filter.RawListing, error)
}

var ErrScraperNotConfigured = errors.New("scraper api key not configured")

// ScraperService queries a structured shopping-search scraping API.
type ScraperService struct {
	apiKey     string
	baseURL    string
	country    string
	httpClient *http.Client
}

func NewScraperService(apiKey, baseURL string, timeout time.Duration) *ScraperService {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &ScraperService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		country:    "br",
		httpClient: &http.Client{Timeout: timeout},
	}
}

type scraperResult struct {
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Price     json.RawMessage `json:"price"`
	URL       string          `json:"url"`
	Link      string          `json:"link"`
	Thumbnail string          `json:"thumbnail"`
	Brand     string          `json:"brand"`
	Rating    float64         `json:"rating"`
	Source    string          `json:"source"`
}

type scraperResponse struct {
	Results []scraperResult `json:"results"`
}

// Search fetches one result page. Listings are returned as scraped; price
// and title are normalized but never validated here.
func (s *ScraperService) Search(ctx context.Context, term string, page int) ([]filter.RawListing, error) {
	if s.apiKey == "" {
		return nil, ErrScraperNotConfigured
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("query", term)
	q.Set("country_code", s.country)
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read scraper response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scraper returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var out scraperResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode scraper response: %w", err)
	}

	listings := make([]filter.RawListing, 0, len(out.Results))
	for _, r := range out.Results {
		name := r.Name
		if name == "" {
			name = r.Title
		}
		link := r.URL
		if link == "" {
			link = r.Link
		}
		listings = append(listings, filter.RawListing{
			Name:      CleanTitle(name),
			Price:     parsePrice(r.Price),
			URL:       link,
			Thumbnail: r.Thumbnail,
			Brand:     r.Brand,
			Rating:    r.Rating,
			Source:    r.Source,
		})
	}
	return listings, nil
}

// CleanTitle strips markup and decodes HTML entities from a scraped title.
func CleanTitle(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return strings.Join(strings.Fields(raw), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// parsePrice accepts a JSON number or a display string such as
// "R$ 1.234,56". Anything unparseable becomes 0.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	return ParseBRL(s)
}

// ParseBRL parses a Brazilian formatted amount. Comma is the decimal
// separator; dots are thousands separators when a comma is present or when
// exactly three digits follow the only dot.
func ParseBRL(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	num := b.String()
	if num == "" {
		return 0
	}

	switch {
	case strings.Contains(num, ","):
		num = strings.ReplaceAll(num, ".", "")
		num = strings.Replace(num, ",", ".", 1)
	case strings.Count(num, ".") > 1:
		num = strings.ReplaceAll(num, ".", "")
	case strings.Count(num, ".") == 1 && len(num)-strings.Index(num, ".") == 4:
		num = strings.ReplaceAll(num, ".", "")
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return v
}

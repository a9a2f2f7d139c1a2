package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Settings holds the credentials and endpoints of every external
// collaborator, read from the environment.
type Settings struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	PublicBaseURL  string
	JWTSecret      string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	StorageFolder       string

	RemoveBgAPIKey string
	RemoveBgURL    string

	LLMProvider  string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
	GrokAPIKey   string
	GrokModel    string
	LLMTimeout   time.Duration

	ScraperAPIKey  string
	ScraperBaseURL string
	ScraperTimeout time.Duration

	PricingConfigPath string
}

// LoadSettings reads Settings from the environment. Call after godotenv.Load.
func LoadSettings() *Settings {
	return &Settings{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8081"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		JWTSecret:      os.Getenv("JWT_SECRET"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		StorageFolder:       getEnv("STORAGE_FOLDER", "racaforte/parts"),

		RemoveBgAPIKey: os.Getenv("REMOVEBG_API_KEY"),
		RemoveBgURL:    getEnv("REMOVEBG_URL", "https://api.remove.bg/v1.0/removebg"),

		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GrokAPIKey:   os.Getenv("GROK_API_KEY"),
		GrokModel:    getEnv("GROK_MODEL", "grok-2-latest"),
		LLMTimeout:   getEnvDuration("LLM_TIMEOUT", 60*time.Second),

		ScraperAPIKey:  os.Getenv("SCRAPER_API_KEY"),
		ScraperBaseURL: getEnv("SCRAPER_BASE_URL", "https://api.scraperapi.com/structured/google/shopping"),
		ScraperTimeout: getEnvDuration("SCRAPER_TIMEOUT", 45*time.Second),

		PricingConfigPath: getEnv("PRICING_CONFIG_PATH", "pricing.yaml"),
	}
}

// PricingConfig holds the price lookup tunables.
type PricingConfig struct {
	MaxPriceVariation   float64 `yaml:"max_price_variation"`
	MinConfidence       float64 `yaml:"min_confidence"`
	IncludeGenericParts bool    `yaml:"include_generic_parts"`
	SearchPages         int     `yaml:"search_pages"`
	CacheTTLMinutes     int     `yaml:"cache_ttl_minutes"`
}

// DefaultPricingConfig returns the tunables used when no YAML file exists.
// A zero MaxPriceVariation leaves price-range filtering off.
func DefaultPricingConfig() *PricingConfig {
	return &PricingConfig{
		MaxPriceVariation:   0,
		MinConfidence:       0.3,
		IncludeGenericParts: true,
		SearchPages:         2,
		CacheTTLMinutes:     360,
	}
}

// LoadPricingConfig reads the pricing tunables from a YAML file. A missing
// file is not an error; defaults are returned instead.
func LoadPricingConfig(path string) (*PricingConfig, error) {
	cfg := DefaultPricingConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", path).Msg("[config] pricing file not found, using defaults")
		cfg.SearchPages = getEnvInt("SCRAPER_PAGES", cfg.SearchPages)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	cfg.SearchPages = getEnvInt("SCRAPER_PAGES", cfg.SearchPages)
	if cfg.SearchPages < 1 {
		cfg.SearchPages = 1
	}
	if cfg.MaxPriceVariation < 0 {
		return nil, fmt.Errorf("max_price_variation must be >= 0, got %v", cfg.MaxPriceVariation)
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return nil, fmt.Errorf("min_confidence must be within [0,1], got %v", cfg.MinConfidence)
	}

	return cfg, nil
}

// CacheTTL is the lifetime of a cached price lookup.
func (c *PricingConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

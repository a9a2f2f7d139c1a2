// @title Racaforte API
// @version 1.0
// @description Inventory and pricing backend for a used auto-parts yard
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"time"

	"github.com/anuntech/racaforte-backend-sub000/cache"
	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/controllers/part_controller"
	"github.com/anuntech/racaforte-backend-sub000/middleware"
	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/anuntech/racaforte-backend-sub000/routes/api_routes"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/anuntech/racaforte-backend-sub000/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	settings := config.LoadSettings()
	utils.InitLogger(settings.AppEnv)

	config.InitDB()
	defer config.CloseDB()
	config.AutoMigrate(&models.Vehicle{}, &models.Part{}, &models.Admin{})

	config.ConnectRedis()
	defer config.CloseRedis()

	if settings.JWTSecret == "" {
		log.Fatal().Msg("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(settings.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize JWT service")
	}
	log.Info().Msg("✅ JWT Service initialized")

	pricingCfg, err := config.LoadPricingConfig(settings.PricingConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load pricing config")
	}

	deps := part_controller.Dependencies{
		Labels:        services.NewLabelService(settings.PublicBaseURL),
		StorageFolder: settings.StorageFolder,
	}

	if settings.CloudinaryCloudName != "" {
		store, err := services.NewCloudinaryService(settings.CloudinaryCloudName, settings.CloudinaryAPIKey, settings.CloudinaryAPISecret)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Cloudinary")
		}
		deps.Images = store
		log.Info().Msg("✅ Cloudinary initialized")
	} else {
		log.Warn().Msg("⚠️  CLOUDINARY_CLOUD_NAME not set, image uploads disabled")
	}

	if settings.RemoveBgAPIKey != "" {
		deps.Remover = services.NewRemoveBgService(settings.RemoveBgAPIKey, settings.RemoveBgURL)
	} else {
		log.Warn().Msg("⚠️  REMOVEBG_API_KEY not set, images are stored as uploaded")
	}

	prices := services.NewPriceLookupService(
		services.NewScraperService(settings.ScraperAPIKey, settings.ScraperBaseURL, settings.ScraperTimeout),
		cache.NewRedisPriceCache(config.RedisClient),
		services.PriceLookupOptions{
			Pages:               pricingCfg.SearchPages,
			MaxPriceVariation:   pricingCfg.MaxPriceVariation,
			MinConfidence:       pricingCfg.MinConfidence,
			IncludeGenericParts: pricingCfg.IncludeGenericParts,
			CacheTTL:            pricingCfg.CacheTTL(),
		},
	)
	deps.Prices = prices

	var advisor services.PartAdvisor
	if llm, err := services.NewLLMService(llmConfig(settings)); err != nil {
		log.Warn().Err(err).Msg("⚠️  LLM disabled, processing fills prices only")
	} else {
		advisor = llm
		log.Info().Str("provider", settings.LLMProvider).Msg("✅ LLM initialized")
	}
	deps.Enricher = services.NewPartEnrichmentService(prices, advisor)

	part_controller.Init(deps)

	if settings.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     settings.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", "Retry-After"},
	}))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(config.RedisClient, 100, time.Minute))

	api_routes.SetupAuthRoutes(api)
	api_routes.SetupVehicleRoutes(api)
	api_routes.SetupPartRoutes(api)

	log.Info().Str("port", settings.Port).Msg("🚀 Server is running")
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// llmConfig picks the credentials of the configured provider.
func llmConfig(s *config.Settings) services.LLMConfig {
	cfg := services.LLMConfig{Provider: s.LLMProvider, Timeout: s.LLMTimeout}
	switch s.LLMProvider {
	case services.ProviderGemini:
		cfg.APIKey, cfg.Model = s.GeminiAPIKey, s.GeminiModel
	case services.ProviderGrok:
		cfg.APIKey, cfg.Model = s.GrokAPIKey, s.GrokModel
	default:
		cfg.APIKey, cfg.Model = s.OpenAIAPIKey, s.OpenAIModel
	}
	return cfg
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/phone_price_api/internal/cache"
	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/config"
	"github.com/GTDGit/phone_price_api/internal/database"
	"github.com/GTDGit/phone_price_api/internal/handler"
	"github.com/GTDGit/phone_price_api/internal/middleware"
	"github.com/GTDGit/phone_price_api/internal/repository"
	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
	"github.com/GTDGit/phone_price_api/internal/worker"
)

// main is the application entrypoint for the phone price API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting phone price api")

	// 3. Context for startup and graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Connect database
	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 4a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4b. Connect to Redis. Without it the shop list is read from Postgres
	// on every catalog view.
	var (
		store       cache.Store
		redisPinger handler.Pinger
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = redisClient
		redisPinger = redisClient
		log.Info().Msg("redis connected successfully")
	} else {
		log.Warn().Msg("redis disabled - shop cache is off")
	}

	// 5. Initialize repositories
	phoneRepo := repository.NewPhoneRepository(db)
	shopRepo := repository.NewShopRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 5a. Catalog source: Postgres with the shop list behind the cache
	repoSource := service.NewRepositorySource(phoneRepo, shopRepo, priceRepo)
	shopCache := cache.NewShopCache(repoSource, store, cfg.Worker.ShopCacheTTL)

	// 6. Initialize services
	utils.InitJWT(cfg.JWTSecret, cfg.Admin.TokenTTL)

	catalogSvc := service.NewCatalogService(shopCache, repoSource, catalogOptions(&cfg.Catalog))
	phoneSvc := service.NewPhoneService(phoneRepo)
	shopSvc := service.NewShopService(shopRepo, shopCache)
	priceSvc := service.NewPriceService(priceRepo, phoneRepo, shopRepo)
	reviewSvc := service.NewReviewService(reviewRepo, phoneRepo)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)

	// 6a. Seed the bootstrap admin
	if cfg.Admin.Email != "" {
		created, err := adminAuthSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.PasswordHash, "Administrator")
		if err != nil {
			log.Error().Err(err).Msg("admin bootstrap failed")
			fmt.Fprintf(os.Stderr, "admin bootstrap failed: %v\n", err)
			os.Exit(1)
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("bootstrap admin created")
		}
	}

	// 7. Initialize handlers
	loginLimiter := middleware.NewLoginRateLimiter(middleware.DefaultLoginAttempts, middleware.DefaultLoginWindow)

	handlers := &Handlers{
		Health:  handler.NewHealthHandler(handler.PingFunc(db.PingContext), redisPinger),
		Phone:   handler.NewPhoneHandler(phoneSvc),
		Shop:    handler.NewShopHandler(shopSvc),
		Price:   handler.NewPriceHandler(priceSvc),
		Review:  handler.NewReviewHandler(reviewSvc),
		Search:  handler.NewSearchHandler(phoneSvc, shopSvc),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Insight: handler.NewInsightHandler(catalogSvc),
		Auth:    handler.NewAuthHandler(adminAuthSvc, loginLimiter),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSHosts...))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Start workers
	go loginLimiter.StartCleanup(ctx)

	go worker.NewCatalogRefreshWorker(shopCache, catalogSvc, cfg.Worker.RefreshInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Phone   *handler.PhoneHandler
	Shop    *handler.ShopHandler
	Price   *handler.PriceHandler
	Review  *handler.ReviewHandler
	Search  *handler.SearchHandler
	Catalog *handler.CatalogHandler
	Insight *handler.InsightHandler
	Auth    *handler.AuthHandler
}

// catalogOptions maps deployment config onto the pipeline policies.
func catalogOptions(cfg *config.CatalogConfig) service.CatalogOptions {
	opts := service.CatalogOptions{
		Concurrency:     cfg.FetchConcurrency,
		Offers:          catalog.OffersAll,
		Unknown:         catalog.UnknownLegacy,
		DefaultImageURL: cfg.DefaultImageURL,
	}
	if cfg.ActiveOnly {
		opts.Offers = catalog.OffersActiveOnly
	}
	if cfg.UnknownLast {
		opts.Unknown = catalog.UnknownLast
	}
	return opts
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/health", handlers.Health.GetHealth)

	v1 := router.Group("/v1")
	{
		// Phones
		v1.GET("/phones", handlers.Phone.ListPhones)
		v1.GET("/phones/:id", handlers.Phone.GetPhone)
		v1.GET("/phones/:id/details", handlers.Catalog.GetDetails)

		// Shops
		v1.GET("/shops", handlers.Shop.ListShops)
		v1.GET("/shops/:id", handlers.Shop.GetShop)

		// Prices
		v1.GET("/prices", handlers.Price.ListPrices)
		v1.GET("/prices/range", handlers.Price.PricesByRange)
		v1.GET("/prices/:id", handlers.Price.GetPrice)

		// Search
		v1.GET("/search/phones", handlers.Search.SearchPhones)
		v1.GET("/search/shops", handlers.Search.SearchShops)
		v1.GET("/search/by-brand", handlers.Search.PhonesByBrand)

		// Reviews
		v1.GET("/reviews", handlers.Review.ListReviews)
		v1.POST("/reviews", handlers.Review.CreateReview)
		v1.GET("/reviews/stats/summary", handlers.Review.GetStats)
		v1.GET("/reviews/:id", handlers.Review.GetReview)
		v1.PUT("/reviews/:id", handlers.Review.UpdateReview)
		v1.PUT("/reviews/:id/helpful", handlers.Review.MarkHelpful)

		// Catalog
		v1.GET("/catalog", handlers.Catalog.Browse)
		v1.GET("/catalog/trending", handlers.Catalog.Trending)
		v1.GET("/catalog/picks", handlers.Catalog.ListPresets)
		v1.GET("/catalog/picks/:preset", handlers.Catalog.GetPicks)
		v1.POST("/compare", handlers.Catalog.Compare)

		// Price insights
		v1.GET("/ai/price-range/:phone_id", handlers.Insight.PriceRange)
		v1.GET("/ai/predict/:phone_id", handlers.Insight.Predict)
		v1.GET("/ai/comparison/:phone_id", handlers.Insight.Comparison)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMiddleware.Handle())
	{
		// Phone Management
		admin.POST("/phones", handlers.Phone.CreatePhone)
		admin.PUT("/phones/:id", handlers.Phone.UpdatePhone)
		admin.DELETE("/phones/:id", handlers.Phone.DeletePhone)

		// Shop Management
		admin.POST("/shops", handlers.Shop.CreateShop)
		admin.PUT("/shops/:id", handlers.Shop.UpdateShop)
		admin.DELETE("/shops/:id", handlers.Shop.DeleteShop)

		// Price Management
		admin.POST("/prices", handlers.Price.CreatePrice)
		admin.PUT("/prices/:id", handlers.Price.UpdatePrice)
		admin.DELETE("/prices/:id", handlers.Price.DeletePrice)

		// Review moderation
		admin.DELETE("/reviews/:id", handlers.Review.DeleteReview)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

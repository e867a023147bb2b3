// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"courtly/internal/bookings"
	"courtly/internal/intents"
	"courtly/internal/pricing"
	"courtly/internal/rates"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/shared/middleware"
	"courtly/internal/stations"
	"courtly/pkg/cache"
	"courtly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	log       *logger.Logger
	publisher bookings.ConfirmationPublisher

	// Wired during SetupRoutes so main can hand it to the sweep processor.
	bookingService bookings.Service
}

// NewRouter creates a new router instance. The publisher may be nil when
// Kafka is disabled; confirmation events are then skipped.
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, publisher bookings.ConfirmationPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		log:       log,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupBookingRoutes(api)
	}
}

// BookingService returns the lifecycle service built during SetupRoutes.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "courtly",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "courtly",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupBookingRoutes wires the full booking stack: directory services,
// pricing pipeline, conflict detection, and the lifecycle service.
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())

	stationRepo := stations.NewRepository(r.db.GetPostgreSQL())
	stationService := stations.NewService(stationRepo, cacheService, r.config.Redis.DirectoryCacheTTL)

	rateRepo := rates.NewRepository(r.db.GetPostgreSQL())
	rateService := rates.NewService(rateRepo, cacheService, r.config.Redis.DirectoryCacheTTL)

	engine := buildPricingEngine(&r.config.Booking)

	intentRepo := intents.NewRepository(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	detector := bookings.NewConflictDetector(bookingRepo, intentRepo)

	r.bookingService = bookings.NewService(
		intentRepo,
		bookingRepo,
		detector,
		stationService,
		rateService,
		engine,
		r.publisher,
		bookings.Config{
			HoldTTL:   r.config.Booking.HoldTTL,
			Promotion: promotionFromConfig(&r.config.Booking),
		},
		r.log,
	)

	controller := bookings.NewController(r.bookingService)
	bookings.SetupBookingRoutes(rg, controller, middleware.JWTAuth(r.config))
}

// buildPricingEngine assembles the calculator list in its canonical order.
// The engine itself is order-independent; the order here only fixes the
// line item sequence in responses.
func buildPricingEngine(cfg *config.BookingConfig) *pricing.Engine {
	return pricing.NewEngine(
		pricing.NewBaseRateCalculator(),
		pricing.NewPromoDiscountCalculator(),
		pricing.NewPlatformFeeCalculator(cfg.PlatformFeePercent),
		pricing.NewTaxCalculator(cfg.TaxPercent, cfg.PlatformFeePercent),
	)
}

func promotionFromConfig(cfg *config.BookingConfig) *pricing.Promotion {
	if cfg.PromoCode == "" || cfg.PromoDiscountPercent <= 0 {
		return nil
	}
	return &pricing.Promotion{
		Code:            cfg.PromoCode,
		DiscountPercent: cfg.PromoDiscountPercent,
	}
}

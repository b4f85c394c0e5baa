package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/drivenow/car-rental-backend/internal/auth"
	bookingHttp "github.com/drivenow/car-rental-backend/internal/booking/http"
	carHttp "github.com/drivenow/car-rental-backend/internal/car/http"
)

// Config holds the dependencies the router needs.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	AdminPasswordHash string
	ImageDir          string

	CarHandler     *carHttp.Handler
	BookingHandler *bookingHttp.Handler
	JWTManager     *auth.JWTManager
	PasswordHasher auth.PasswordHasher
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Recovery) and registers the public
// catalog/booking routes plus the guarded admin surface.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger prints request lines to the console; Recovery turns panics into
	// 500 responses instead of crashing the process.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/", index)
	r.GET("/health", health)

	// Stored car images
	r.Static(carHttp.StaticImagePrefix, cfg.ImageDir)

	adminMiddleware := auth.AdminRequired(cfg.JWTManager)
	authHandler := NewAuthHandler(cfg.AdminPasswordHash, cfg.PasswordHasher, cfg.JWTManager)

	api := r.Group("/api")
	{
		carHttp.RegisterRoutes(api, cfg.CarHandler)
		bookingHttp.RegisterRoutes(api, cfg.BookingHandler)
		api.GET("/cars/:id/availability", cfg.BookingHandler.Availability)

		admin := api.Group("/admin")
		admin.POST("/login", authHandler.Login)

		guarded := admin.Group("")
		guarded.Use(adminMiddleware)
		carHttp.RegisterAdminRoutes(guarded, cfg.CarHandler)
	}

	return r
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Car Rental API is running!",
		"endpoints": gin.H{
			"health":   "/health",
			"cars":     "/api/cars",
			"bookings": "/api/bookings",
		},
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

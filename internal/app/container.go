package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivenow/car-rental-backend/internal/api"
	"github.com/drivenow/car-rental-backend/internal/auth"
	"github.com/drivenow/car-rental-backend/internal/booking"
	bookingHttp "github.com/drivenow/car-rental-backend/internal/booking/http"
	"github.com/drivenow/car-rental-backend/internal/car"
	carHttp "github.com/drivenow/car-rental-backend/internal/car/http"
	"github.com/drivenow/car-rental-backend/internal/pkg/storage"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	DBPool            *pgxpool.Pool
	JWTSecret         string
	JWTTTL            time.Duration
	AdminPasswordHash string
	ImageDir          string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasher()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Car module
	carRepo := car.NewPgxRepository(cfg.DBPool)
	carService := car.NewService(carRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, carService)

	// Image storage
	store, err := storage.NewLocalStorage(cfg.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("init image storage: %w", err)
	}
	carHandler := carHttp.NewHandler(carService, store, storage.NewImageProcessor())
	bookingHandler := bookingHttp.NewHandler(bookingService)

	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		AdminPasswordHash: cfg.AdminPasswordHash,
		ImageDir:          cfg.ImageDir,
		CarHandler:        carHandler,
		BookingHandler:    bookingHandler,
		JWTManager:        jwtManager,
		PasswordHasher:    passwordHasher,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}

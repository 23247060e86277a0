package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/wanderke/wanderke-api/app/db"
	"github.com/wanderke/wanderke-api/app/observability/metrics"
	"github.com/wanderke/wanderke-api/config"
	"github.com/wanderke/wanderke-api/internal/api/auth"
	"github.com/wanderke/wanderke-api/internal/api/contact"
	"github.com/wanderke/wanderke-api/internal/api/county"
	"github.com/wanderke/wanderke-api/internal/api/favorites"
	"github.com/wanderke/wanderke-api/internal/api/hotel"
	"github.com/wanderke/wanderke-api/internal/api/media"
	"github.com/wanderke/wanderke-api/internal/api/place"
	"github.com/wanderke/wanderke-api/internal/api/user"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	AuthHandler      *auth.HandlerImpl
	UserHandler      *user.HandlerImpl
	FavoritesHandler *favorites.HandlerImpl
	CountyHandler    *county.HandlerImpl
	PlaceHandler     *place.HandlerImpl
	HotelHandler     *hotel.HandlerImpl
	ContactHandler   *contact.HandlerImpl
	MediaHandler     *media.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, cfg, logger)
	authHandler := auth.NewHandlerImpl(authService, appMetrics, logger)

	userRepo := user.NewPostgresUserRepo(pool, logger)
	userService := user.NewUserService(userRepo, logger)
	userHandler := user.NewHandlerImpl(userService, logger)

	countyRepo := county.NewPostgresCountyRepo(pool, logger)
	countyService := county.NewCountyService(countyRepo, logger)
	countyHandler := county.NewHandlerImpl(countyService, logger)

	placeRepo := place.NewPostgresPlaceRepo(pool, logger)
	placeService := place.NewPlaceService(placeRepo, logger)
	placeHandler := place.NewHandlerImpl(placeService, logger)

	hotelRepo := hotel.NewPostgresHotelRepo(pool, logger)
	hotelService := hotel.NewHotelService(hotelRepo, logger)
	hotelHandler := hotel.NewHandlerImpl(hotelService, logger)

	// Favorites resolve their targets through the place, county and
	// hotel services so cached county reads are reused.
	resolver := favorites.NewResolver(placeService, countyService, hotelService)
	favoritesRepo := favorites.NewPostgresFavoritesRepo(pool, logger)
	favoritesService := favorites.NewFavoritesService(favoritesRepo, resolver, appMetrics, logger)
	favoritesHandler := favorites.NewHandlerImpl(favoritesService, logger)

	contactRepo := contact.NewPostgresContactRepo(pool, logger)
	contactService := contact.NewContactService(contactRepo, logger)
	contactHandler := contact.NewHandlerImpl(contactService, logger)

	mediaService, err := media.NewMediaService(ctx, cfg.S3, logger)
	if err != nil {
		logger.Error("Failed to initialize media service", slog.Any("error", err))
		return nil, err
	}
	mediaHandler := media.NewHandlerImpl(mediaService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		FavoritesHandler: favoritesHandler,
		CountyHandler:    countyHandler,
		PlaceHandler:     placeHandler,
		HotelHandler:     hotelHandler,
		ContactHandler:   contactHandler,
		MediaHandler:     mediaHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}

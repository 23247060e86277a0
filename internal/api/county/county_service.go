package county

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/wanderke/wanderke-api/internal/types"
)

// County data changes rarely, so listings and single lookups are
// served from an in-process cache for a few minutes.
const (
	cacheTTL             = 5 * time.Minute
	cacheCleanupInterval = 10 * time.Minute
	countiesCacheKey     = "counties:all"
)

var _ CountyService = (*CountyServiceImpl)(nil)

// CountyService defines the business logic contract for counties and
// their events.
type CountyService interface {
	GetCounties(ctx context.Context) ([]types.County, error)
	GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error)
	GetEventsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Event, error)
}

type CountyServiceImpl struct {
	logger *slog.Logger
	repo   CountyRepo
	cache  *cache.Cache
}

func NewCountyService(repo CountyRepo, logger *slog.Logger) *CountyServiceImpl {
	return &CountyServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(cacheTTL, cacheCleanupInterval),
	}
}

func (s *CountyServiceImpl) GetCounties(ctx context.Context) ([]types.County, error) {
	l := s.logger.With(slog.String("method", "GetCounties"))

	if cached, found := s.cache.Get(countiesCacheKey); found {
		l.DebugContext(ctx, "Serving counties from cache")
		return cached.([]types.County), nil
	}

	counties, err := s.repo.GetCounties(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch counties", slog.Any("error", err))
		return nil, err
	}

	s.cache.Set(countiesCacheKey, counties, cache.DefaultExpiration)
	return counties, nil
}

func (s *CountyServiceImpl) GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error) {
	l := s.logger.With(slog.String("method", "GetCounty"), slog.String("countyID", countyID.String()))

	key := "county:" + countyID.String()
	if cached, found := s.cache.Get(key); found {
		return cached.(*types.County), nil
	}

	county, err := s.repo.GetCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch county", slog.Any("error", err))
		return nil, err
	}

	s.cache.Set(key, county, cache.DefaultExpiration)
	return county, nil
}

// Events are time-sensitive, so they bypass the cache.
func (s *CountyServiceImpl) GetEventsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Event, error) {
	l := s.logger.With(slog.String("method", "GetEventsByCounty"), slog.String("countyID", countyID.String()))

	events, err := s.repo.GetEventsByCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch events", slog.Any("error", err))
		return nil, err
	}

	return events, nil
}

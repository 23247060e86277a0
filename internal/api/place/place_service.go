package place

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/types"
)

var _ PlaceService = (*PlaceServiceImpl)(nil)

// PlaceService defines the business logic contract for places. It also
// satisfies the favorites package's PlaceLookup.
type PlaceService interface {
	GetPlacesByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Place, error)
	GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error)
}

type PlaceServiceImpl struct {
	logger *slog.Logger
	repo   PlaceRepo
}

func NewPlaceService(repo PlaceRepo, logger *slog.Logger) *PlaceServiceImpl {
	return &PlaceServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *PlaceServiceImpl) GetPlacesByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Place, error) {
	l := s.logger.With(slog.String("method", "GetPlacesByCounty"), slog.String("countyID", countyID.String()))

	places, err := s.repo.GetPlacesByCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch places", slog.Any("error", err))
		return nil, err
	}

	return places, nil
}

func (s *PlaceServiceImpl) GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error) {
	l := s.logger.With(slog.String("method", "GetPlace"), slog.String("placeID", placeID.String()))

	place, err := s.repo.GetPlace(ctx, placeID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch place", slog.Any("error", err))
		return nil, err
	}

	return place, nil
}

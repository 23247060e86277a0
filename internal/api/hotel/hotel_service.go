package hotel

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/types"
)

var _ HotelService = (*HotelServiceImpl)(nil)

// HotelService defines the business logic contract for hotels. It also
// satisfies the favorites package's HotelLookup.
type HotelService interface {
	GetHotelsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Hotel, error)
	GetHotel(ctx context.Context, hotelID uuid.UUID) (*types.Hotel, error)
}

type HotelServiceImpl struct {
	logger *slog.Logger
	repo   HotelRepo
}

func NewHotelService(repo HotelRepo, logger *slog.Logger) *HotelServiceImpl {
	return &HotelServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *HotelServiceImpl) GetHotelsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Hotel, error) {
	l := s.logger.With(slog.String("method", "GetHotelsByCounty"), slog.String("countyID", countyID.String()))

	hotels, err := s.repo.GetHotelsByCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch hotels", slog.Any("error", err))
		return nil, err
	}

	return hotels, nil
}

func (s *HotelServiceImpl) GetHotel(ctx context.Context, hotelID uuid.UUID) (*types.Hotel, error) {
	l := s.logger.With(slog.String("method", "GetHotel"), slog.String("hotelID", hotelID.String()))

	hotel, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch hotel", slog.Any("error", err))
		return nil, err
	}

	return hotel, nil
}

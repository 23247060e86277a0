package hotel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/wanderke/wanderke-api/app/db"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ HotelRepo = (*PostgresHotelRepo)(nil)

// HotelRepo defines the contract for hotel persistence.
type HotelRepo interface {
	GetHotelsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Hotel, error)
	// GetHotel returns types.ErrNotFound when no hotel matches.
	GetHotel(ctx context.Context, hotelID uuid.UUID) (*types.Hotel, error)
}

type PostgresHotelRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresHotelRepo(db database.Pool, logger *slog.Logger) *PostgresHotelRepo {
	return &PostgresHotelRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresHotelRepo) GetHotelsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "GetHotelsByCounty", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, county_id, name, description, address, image_url, rating, price_range
         FROM hotels WHERE county_id = $1
         ORDER BY name`,
		countyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]types.Hotel, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var h types.Hotel
		if err := rows.Scan(&h.ID, &h.CountyID, &h.Name, &h.Description, &h.Address,
			&h.ImageURL, &h.Rating, &h.PriceRange); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		h.Reviews = make([]types.Review, 0)
		hotels = append(hotels, h)
		ids = append(ids, h.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hotels rows error: %w", err)
	}

	if len(hotels) == 0 {
		return hotels, nil
	}

	reviews, err := r.reviewsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range hotels {
		if rs, ok := reviews[hotels[i].ID]; ok {
			hotels[i].Reviews = rs
		}
	}

	return hotels, nil
}

func (r *PostgresHotelRepo) GetHotel(ctx context.Context, hotelID uuid.UUID) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "GetHotel", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	var h types.Hotel
	err := r.db.QueryRow(ctx,
		`SELECT id, county_id, name, description, address, image_url, rating, price_range
         FROM hotels WHERE id = $1`,
		hotelID).Scan(&h.ID, &h.CountyID, &h.Name, &h.Description, &h.Address,
		&h.ImageURL, &h.Rating, &h.PriceRange)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel %s: %w", hotelID, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query hotel: %w", err)
	}

	reviews, err := r.reviewsFor(ctx, []uuid.UUID{h.ID})
	if err != nil {
		return nil, err
	}
	h.Reviews = reviews[h.ID]
	if h.Reviews == nil {
		h.Reviews = make([]types.Review, 0)
	}

	return &h, nil
}

func (r *PostgresHotelRepo) reviewsFor(ctx context.Context, hotelIDs []uuid.UUID) (map[uuid.UUID][]types.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, hotel_id, username, avatar, rating, review, created_at
         FROM hotel_reviews WHERE hotel_id = ANY($1)
         ORDER BY created_at`,
		hotelIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotel reviews: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]types.Review)
	for rows.Next() {
		var rev types.Review
		var hotelID uuid.UUID
		if err := rows.Scan(&rev.ID, &hotelID, &rev.Username, &rev.Avatar,
			&rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hotel review: %w", err)
		}
		out[hotelID] = append(out[hotelID], rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hotel reviews rows error: %w", err)
	}

	return out, nil
}

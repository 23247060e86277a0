package place

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

var _ PlaceRepo = (*PostgresPlaceRepo)(nil)

// PlaceRepo defines the contract for place persistence. Place payloads
// embed their reviews, mirroring what the mobile detail screen renders.
type PlaceRepo interface {
	GetPlacesByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Place, error)
	// GetPlace returns types.ErrNotFound when no place matches.
	GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error)
}

type PostgresPlaceRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresPlaceRepo(db database.Pool, logger *slog.Logger) *PostgresPlaceRepo {
	return &PostgresPlaceRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresPlaceRepo) GetPlacesByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlaceRepo").Start(ctx, "GetPlacesByCounty", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "places"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, county_id, name, description, address, image_url, rating
         FROM places WHERE county_id = $1
         ORDER BY name`,
		countyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := make([]types.Place, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var p types.Place
		if err := rows.Scan(&p.ID, &p.CountyID, &p.Name, &p.Description, &p.Address,
			&p.ImageURL, &p.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		p.Reviews = make([]types.Review, 0)
		places = append(places, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("places rows error: %w", err)
	}

	if len(places) == 0 {
		return places, nil
	}

	reviews, err := r.reviewsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range places {
		if rs, ok := reviews[places[i].ID]; ok {
			places[i].Reviews = rs
		}
	}

	return places, nil
}

func (r *PostgresPlaceRepo) GetPlace(ctx context.Context, placeID uuid.UUID) (*types.Place, error) {
	ctx, span := otel.Tracer("PlaceRepo").Start(ctx, "GetPlace", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "places"),
	))
	defer span.End()

	var p types.Place
	err := r.db.QueryRow(ctx,
		`SELECT id, county_id, name, description, address, image_url, rating
         FROM places WHERE id = $1`,
		placeID).Scan(&p.ID, &p.CountyID, &p.Name, &p.Description, &p.Address,
		&p.ImageURL, &p.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("place %s: %w", placeID, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query place: %w", err)
	}

	reviews, err := r.reviewsFor(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews[p.ID]
	if p.Reviews == nil {
		p.Reviews = make([]types.Review, 0)
	}

	return &p, nil
}

func (r *PostgresPlaceRepo) reviewsFor(ctx context.Context, placeIDs []uuid.UUID) (map[uuid.UUID][]types.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, place_id, username, avatar, rating, review, created_at
         FROM place_reviews WHERE place_id = ANY($1)
         ORDER BY created_at`,
		placeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query place reviews: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]types.Review)
	for rows.Next() {
		var rev types.Review
		var placeID uuid.UUID
		if err := rows.Scan(&rev.ID, &placeID, &rev.Username, &rev.Avatar,
			&rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan place review: %w", err)
		}
		out[placeID] = append(out[placeID], rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("place reviews rows error: %w", err)
	}

	return out, nil
}

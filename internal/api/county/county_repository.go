package county

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

var _ CountyRepo = (*PostgresCountyRepo)(nil)

// CountyRepo defines the contract for county and event persistence.
type CountyRepo interface {
	GetCounties(ctx context.Context) ([]types.County, error)
	// GetCounty returns types.ErrNotFound when no county matches.
	GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error)
	GetEventsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Event, error)
}

type PostgresCountyRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresCountyRepo(db database.Pool, logger *slog.Logger) *PostgresCountyRepo {
	return &PostgresCountyRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresCountyRepo) GetCounties(ctx context.Context) ([]types.County, error) {
	ctx, span := otel.Tracer("CountyRepo").Start(ctx, "GetCounties", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "counties"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, name, capital, about, image_url, population
         FROM counties ORDER BY name`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query counties: %w", err)
	}
	defer rows.Close()

	counties := make([]types.County, 0)
	for rows.Next() {
		var c types.County
		if err := rows.Scan(&c.ID, &c.Name, &c.Capital, &c.About, &c.ImageURL, &c.Population); err != nil {
			return nil, fmt.Errorf("failed to scan county: %w", err)
		}
		counties = append(counties, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counties rows error: %w", err)
	}

	return counties, nil
}

func (r *PostgresCountyRepo) GetCounty(ctx context.Context, countyID uuid.UUID) (*types.County, error) {
	ctx, span := otel.Tracer("CountyRepo").Start(ctx, "GetCounty", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "counties"),
	))
	defer span.End()

	var c types.County
	err := r.db.QueryRow(ctx,
		`SELECT id, name, capital, about, image_url, population
         FROM counties WHERE id = $1`,
		countyID).Scan(&c.ID, &c.Name, &c.Capital, &c.About, &c.ImageURL, &c.Population)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("county %s: %w", countyID, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query county: %w", err)
	}

	return &c, nil
}

func (r *PostgresCountyRepo) GetEventsByCounty(ctx context.Context, countyID uuid.UUID) ([]types.Event, error) {
	ctx, span := otel.Tracer("CountyRepo").Start(ctx, "GetEventsByCounty", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "events"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, county_id, name, description, venue, image_url, starts_at, ends_at
         FROM events WHERE county_id = $1
         ORDER BY starts_at`,
		countyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]types.Event, 0)
	for rows.Next() {
		var e types.Event
		if err := rows.Scan(&e.ID, &e.CountyID, &e.Name, &e.Description, &e.Venue,
			&e.ImageURL, &e.StartsAt, &e.EndsAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events rows error: %w", err)
	}

	return events, nil
}

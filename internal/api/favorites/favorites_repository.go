package favorites

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

var _ FavoritesRepo = (*PostgresFavoritesRepo)(nil)

// FavoritesRepo defines the contract for favourites persistence.
type FavoritesRepo interface {
	// UserExists reports whether the user row is present.
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)

	// Add appends a favourite reference. Duplicates are permitted;
	// the ledger deliberately has no uniqueness constraint.
	Add(ctx context.Context, userID uuid.UUID, ref types.FavoriteRef) error

	// Remove deletes every reference matching both the target ID and
	// type and returns how many rows went away. Zero matches is not
	// an error.
	Remove(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) (int64, error)

	// List returns the user's references in insertion order.
	List(ctx context.Context, userID uuid.UUID) ([]types.FavoriteRef, error)
}

type PostgresFavoritesRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresFavoritesRepo(db database.Pool, logger *slog.Logger) *PostgresFavoritesRepo {
	return &PostgresFavoritesRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresFavoritesRepo) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

func (r *PostgresFavoritesRepo) Add(ctx context.Context, userID uuid.UUID, ref types.FavoriteRef) error {
	ctx, span := otel.Tracer("FavoritesRepo").Start(ctx, "Add", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "favorites"),
		attribute.String("favorite.target_type", string(ref.TargetType)),
	))
	defer span.End()

	_, err := r.db.Exec(ctx,
		`INSERT INTO favorites (user_id, target_id, target_type, county_id)
         VALUES ($1, $2, $3, $4)`,
		userID, ref.TargetID, ref.TargetType, ref.CountyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	r.logger.DebugContext(ctx, "Favorite appended",
		slog.String("userID", userID.String()),
		slog.String("targetID", ref.TargetID.String()),
		slog.String("targetType", string(ref.TargetType)))
	return nil
}

func (r *PostgresFavoritesRepo) Remove(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) (int64, error) {
	ctx, span := otel.Tracer("FavoritesRepo").Start(ctx, "Remove", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "favorites"),
		attribute.String("favorite.target_type", string(targetType)),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites
         WHERE user_id = $1 AND target_id = $2 AND target_type = $3`,
		userID, targetID, targetType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return 0, fmt.Errorf("failed to delete favorites: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresFavoritesRepo) List(ctx context.Context, userID uuid.UUID) ([]types.FavoriteRef, error) {
	ctx, span := otel.Tracer("FavoritesRepo").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "favorites"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT target_id, target_type, county_id, created_at
         FROM favorites WHERE user_id = $1
         ORDER BY created_at, id`,
		userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	refs := make([]types.FavoriteRef, 0)
	for rows.Next() {
		var ref types.FavoriteRef
		if err := rows.Scan(&ref.TargetID, &ref.TargetType, &ref.CountyID, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows error: %w", err)
	}

	return refs, nil
}

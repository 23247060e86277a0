package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/wanderke/wanderke-api/app/db"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for user profile persistence.
type UserRepo interface {
	// GetUserByID retrieves a user's profile, including favorite
	// references, with internal fields stripped. Returns
	// types.ErrNotFound if the user doesn't exist.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)

	// UpdateProfileByEmail updates mutable profile fields on the
	// account matching the email and returns the updated profile.
	// Returns types.ErrNotFound if no account matches and
	// types.ErrConflict if the new username belongs to someone else.
	// A username or avatar change is propagated to every review the
	// account authored; that rewrite is best effort.
	UpdateProfileByEmail(ctx context.Context, email string, params types.UpdateProfileParams) (*types.User, error)

	// DeleteAccount hard-deletes the user. Favorites go with the row;
	// authored reviews keep their denormalized author copies.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type PostgresUserRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresUserRepo(db database.Pool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var user types.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, role, profile_image_url, theme
         FROM users WHERE id = $1`,
		userID).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.Profile, &user.Theme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	favorites, err := r.favoriteRefs(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "favorites query failed")
		return nil, err
	}
	user.Favorites = favorites

	return &user, nil
}

func (r *PostgresUserRepo) favoriteRefs(ctx context.Context, userID uuid.UUID) ([]types.FavoriteRef, error) {
	rows, err := r.db.Query(ctx,
		`SELECT target_id, target_type, county_id, created_at
         FROM favorites WHERE user_id = $1
         ORDER BY created_at, id`,
		userID)
	if err != nil {
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

func (r *PostgresUserRepo) UpdateProfileByEmail(ctx context.Context, email string, params types.UpdateProfileParams) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "UpdateProfileByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateProfileByEmail"))

	var userID uuid.UUID
	var oldUsername string
	var oldProfile *string
	err := r.db.QueryRow(ctx,
		`SELECT id, username, profile_image_url FROM users WHERE email = $1`,
		email).Scan(&userID, &oldUsername, &oldProfile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with email %q: %w", email, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *params.Username)
		argID++
		span.SetAttributes(attribute.Bool("update.username", true))
	}
	if params.Profile != nil {
		setClauses = append(setClauses, fmt.Sprintf("profile_image_url = $%d", argID))
		args = append(args, *params.Profile)
		argID++
		span.SetAttributes(attribute.Bool("update.profile", true))
	}
	if params.Theme != nil {
		setClauses = append(setClauses, fmt.Sprintf("theme = $%d", argID))
		args = append(args, *params.Theme)
		argID++
		span.SetAttributes(attribute.Bool("update.theme", true))
	}

	if len(setClauses) > 0 {
		setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
		args = append(args, time.Now())
		argID++

		query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
			strings.Join(setClauses, ", "), argID)
		args = append(args, userID)

		if _, err := r.db.Exec(ctx, query, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				l.WarnContext(ctx, "Username already taken", slog.String("username", *params.Username))
				span.SetStatus(codes.Error, "duplicate username")
				return nil, fmt.Errorf("username already exists: %w", types.ErrConflict)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "update failed")
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	} else {
		l.WarnContext(ctx, "UpdateProfileByEmail called with no fields to update")
	}

	// Reviews embed the author's username and avatar, so an identity
	// change must be copied into both review tables. Best effort only,
	// a propagation failure does not roll back the profile update.
	if params.Username != nil || params.Profile != nil {
		newUsername := oldUsername
		if params.Username != nil {
			newUsername = *params.Username
		}
		newProfile := oldProfile
		if params.Profile != nil {
			newProfile = params.Profile
		}
		r.propagateAuthorIdentity(ctx, oldUsername, newUsername, newProfile)
	}

	return r.GetUserByID(ctx, userID)
}

func (r *PostgresUserRepo) propagateAuthorIdentity(ctx context.Context, oldUsername, newUsername string, avatar *string) {
	l := r.logger.With(slog.String("method", "propagateAuthorIdentity"),
		slog.String("old_username", oldUsername), slog.String("new_username", newUsername))

	for _, table := range []string{"place_reviews", "hotel_reviews"} {
		query := fmt.Sprintf("UPDATE %s SET username = $1, avatar = $2 WHERE username = $3", table)
		tag, err := r.db.Exec(ctx, query, newUsername, avatar, oldUsername)
		if err != nil {
			l.WarnContext(ctx, "Failed to propagate author identity to reviews",
				slog.String("table", table), slog.Any("error", err))
			continue
		}
		if tag.RowsAffected() > 0 {
			l.InfoContext(ctx, "Rewrote authored reviews",
				slog.String("table", table), slog.Int64("rows", tag.RowsAffected()))
		}
	}
}

func (r *PostgresUserRepo) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "DeleteAccount", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
	}

	r.logger.InfoContext(ctx, "Account deleted", slog.String("userID", userID.String()))
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

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

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo defines the contract for credential persistence.
type AuthRepo interface {
	// Register creates a new user and returns its ID. Returns
	// types.ErrConflict when the username is already taken. Email
	// uniqueness is deliberately not enforced, only username is.
	Register(ctx context.Context, username, email, passwordRecord string) (string, error)

	// GetUserByEmail returns types.ErrNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error)

	// GetUserByID returns types.ErrNotFound when no user matches.
	GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error)

	// UpdatePasswordRecord replaces the stored password record, used
	// when migrating legacy encrypted records to bcrypt.
	UpdatePasswordRecord(ctx context.Context, userID, newRecord string) error
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresAuthRepo(db database.Pool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresAuthRepo) Register(ctx context.Context, username, email, passwordRecord string) (string, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "Register", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Register"), slog.String("username", username))

	var userID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role)
         VALUES ($1, $2, $3, $4)
         RETURNING id`,
		username, email, passwordRecord, types.RoleUser).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			l.WarnContext(ctx, "Username already taken")
			span.SetStatus(codes.Error, "duplicate username")
			return "", fmt.Errorf("username %q already exists: %w", username, types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", userID))
	return userID, nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var user types.UserAuth
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, role, created_at, updated_at
         FROM users WHERE email = $1`,
		email).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with email %q: %w", email, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &user, nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var user types.UserAuth
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, role, created_at, updated_at
         FROM users WHERE id = $1`,
		userID).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", userID, types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresAuthRepo) UpdatePasswordRecord(ctx context.Context, userID, newRecord string) error {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "UpdatePasswordRecord", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		newRecord, time.Now(), userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return fmt.Errorf("failed to update password record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %q: %w", userID, types.ErrNotFound)
	}
	return nil
}

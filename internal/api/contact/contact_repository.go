package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/wanderke/wanderke-api/app/db"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ ContactRepo = (*PostgresContactRepo)(nil)

// ContactRepo persists messages submitted through the contact form.
type ContactRepo interface {
	SaveMessage(ctx context.Context, msg types.ContactMessage) (uuid.UUID, error)
}

type PostgresContactRepo struct {
	logger *slog.Logger
	db     database.Pool
}

func NewPostgresContactRepo(db database.Pool, logger *slog.Logger) *PostgresContactRepo {
	return &PostgresContactRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresContactRepo) SaveMessage(ctx context.Context, msg types.ContactMessage) (uuid.UUID, error) {
	ctx, span := otel.Tracer("ContactRepo").Start(ctx, "SaveMessage", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "contact_messages"),
	))
	defer span.End()

	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, message)
         VALUES ($1, $2, $3)
         RETURNING id`,
		msg.Name, msg.Email, msg.Message).Scan(&id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return uuid.Nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	span.SetStatus(codes.Ok, "message saved")
	return id, nil
}

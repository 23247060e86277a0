package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/types"
)

var _ ContactService = (*ContactServiceImpl)(nil)

type ContactService interface {
	SubmitMessage(ctx context.Context, msg types.ContactMessage) (uuid.UUID, error)
}

type ContactServiceImpl struct {
	logger *slog.Logger
	repo   ContactRepo
}

func NewContactService(repo ContactRepo, logger *slog.Logger) *ContactServiceImpl {
	return &ContactServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ContactServiceImpl) SubmitMessage(ctx context.Context, msg types.ContactMessage) (uuid.UUID, error) {
	l := s.logger.With(slog.String("method", "SubmitMessage"))

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return uuid.Nil, fmt.Errorf("name, email and message are required: %w", types.ErrBadRequest)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return uuid.Nil, fmt.Errorf("invalid email address: %w", types.ErrBadRequest)
	}

	id, err := s.repo.SaveMessage(ctx, msg)
	if err != nil {
		l.ErrorContext(ctx, "Failed to save contact message", slog.Any("error", err))
		return uuid.Nil, err
	}

	l.InfoContext(ctx, "Contact message received", slog.String("messageID", id.String()))
	return id, nil
}

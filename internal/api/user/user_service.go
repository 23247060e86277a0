package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for user operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateUserProfile(ctx context.Context, email string, params types.UpdateProfileParams) (*types.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// GetUserProfile retrieves a user's profile by ID.
func (s *UserServiceImpl) GetUserProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	l := s.logger.With(slog.String("method", "GetUserProfile"), slog.String("userID", userID.String()))
	l.DebugContext(ctx, "Fetching user profile")

	profile, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch user profile", slog.Any("error", err))
		return nil, fmt.Errorf("error fetching user profile: %w", err)
	}

	return profile, nil
}

// UpdateUserProfile updates the account matching the email and returns
// the updated profile.
func (s *UserServiceImpl) UpdateUserProfile(ctx context.Context, email string, params types.UpdateProfileParams) (*types.User, error) {
	l := s.logger.With(slog.String("method", "UpdateUserProfile"))
	l.DebugContext(ctx, "Updating user profile")

	updated, err := s.repo.UpdateProfileByEmail(ctx, email, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to update user profile", slog.Any("error", err))
		return nil, err
	}

	l.InfoContext(ctx, "User profile updated", slog.String("userID", updated.ID.String()))
	return updated, nil
}

// DeleteAccount hard-deletes the user's account.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	l := s.logger.With(slog.String("method", "DeleteAccount"), slog.String("userID", userID.String()))
	l.DebugContext(ctx, "Deleting account")

	if err := s.repo.DeleteAccount(ctx, userID); err != nil {
		l.ErrorContext(ctx, "Failed to delete account", slog.Any("error", err))
		return err
	}

	l.InfoContext(ctx, "Account deleted")
	return nil
}

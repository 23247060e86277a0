package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wanderke/wanderke-api/internal/types"
)

// MockUserRepo is a mock implementation of the UserRepo interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfileByEmail(ctx context.Context, email string, params types.UpdateProfileParams) (*types.User, error) {
	args := m.Called(ctx, email, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestGetUserProfile(t *testing.T) {
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, logger)
		ctx := context.Background()
		userID := uuid.New()

		expected := &types.User{
			ID:       userID,
			Username: "alice",
			Email:    "a@x.com",
			Role:     types.RoleUser,
		}
		mockRepo.On("GetUserByID", ctx, userID).Return(expected, nil).Once()

		got, err := service.GetUserProfile(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, logger)
		ctx := context.Background()
		userID := uuid.New()

		mockRepo.On("GetUserByID", ctx, userID).Return(nil, types.ErrNotFound).Once()

		_, err := service.GetUserProfile(ctx, userID)

		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateUserProfile(t *testing.T) {
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, logger)
		ctx := context.Background()

		newName := "alice2"
		params := types.UpdateProfileParams{Username: &newName}
		updated := &types.User{ID: uuid.New(), Username: newName, Email: "a@x.com", Role: types.RoleUser}

		mockRepo.On("UpdateProfileByEmail", ctx, "a@x.com", params).Return(updated, nil).Once()

		got, err := service.UpdateUserProfile(ctx, "a@x.com", params)

		assert.NoError(t, err)
		assert.Equal(t, "alice2", got.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, logger)
		ctx := context.Background()

		newName := "taken"
		params := types.UpdateProfileParams{Username: &newName}
		mockRepo.On("UpdateProfileByEmail", ctx, "a@x.com", params).Return(nil, types.ErrConflict).Once()

		_, err := service.UpdateUserProfile(ctx, "a@x.com", params)

		assert.ErrorIs(t, err, types.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteAccount(t *testing.T) {
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, logger)
		ctx := context.Background()
		userID := uuid.New()

		mockRepo.On("DeleteAccount", ctx, userID).Return(nil).Once()

		assert.NoError(t, service.DeleteAccount(ctx, userID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, logger)
		ctx := context.Background()
		userID := uuid.New()

		mockRepo.On("DeleteAccount", ctx, userID).Return(types.ErrNotFound).Once()

		assert.ErrorIs(t, service.DeleteAccount(ctx, userID), types.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderke/wanderke-api/config"
	"github.com/wanderke/wanderke-api/internal/types"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) Register(ctx context.Context, username, email, passwordRecord string) (string, error) {
	args := m.Called(ctx, username, email, passwordRecord)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) UpdatePasswordRecord(ctx context.Context, userID, newRecord string) error {
	args := m.Called(ctx, userID, newRecord)
	return args.Error(0)
}

func testConfig() *config.Config {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey: "test-secret",
			Issuer:    "test-issuer",
			Audience:  "test-audience",
			TokenTTL:  time.Hour,
		},
	}
	cfg.Legacy.PasswordSecret = "legacy-secret"
	return cfg
}

func TestLogin(t *testing.T) {
	logger := slog.Default()
	cfg := testConfig()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, cfg, logger)
		ctx := context.Background()
		email := "test@example.com"
		password := "password123"
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    email,
			Password: string(hashedPassword),
			Role:     types.RoleUser,
		}

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()

		userID, token, err := service.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.Equal(t, "user123", userID)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, cfg, logger)
		ctx := context.Background()

		mockRepo.On("GetUserByEmail", ctx, "missing@example.com").Return(nil, types.ErrNotFound).Once()

		_, _, err := service.Login(ctx, "missing@example.com", "whatever")

		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, cfg, logger)
		ctx := context.Background()
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    "test@example.com",
			Password: string(hashedPassword),
			Role:     types.RoleUser,
		}

		mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := service.Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, cfg, logger)
		ctx := context.Background()
		password := "password123"
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    "test@example.com",
			Password: string(hashedPassword),
			Role:     "superuser",
		}

		mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := service.Login(ctx, user.Email, password)

		assert.ErrorIs(t, err, types.ErrForbidden)
		mockRepo.AssertExpectations(t)
	})

	t.Run("LegacyRecordMigratedOnLogin", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, cfg, logger)
		ctx := context.Background()
		password := "old-password"

		legacyRecord, err := NewLegacyCipher(cfg.Legacy.PasswordSecret).Encrypt(password)
		require.NoError(t, err)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    "legacy@example.com",
			Password: legacyRecord,
			Role:     types.RoleUser,
		}

		mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
		mockRepo.On("UpdatePasswordRecord", ctx, user.ID, mock.MatchedBy(func(record string) bool {
			return bcrypt.CompareHashAndPassword([]byte(record), []byte(password)) == nil
		})).Return(nil).Once()

		userID, token, err := service.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.Equal(t, "user123", userID)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("LegacyRecordWrongPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewAuthService(mockRepo, cfg, logger)
		ctx := context.Background()

		legacyRecord, err := NewLegacyCipher(cfg.Legacy.PasswordSecret).Encrypt("old-password")
		require.NoError(t, err)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    "legacy@example.com",
			Password: legacyRecord,
			Role:     types.RoleUser,
		}

		mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err = service.Login(ctx, user.Email, "not-the-password")

		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testConfig(), slog.Default())

	user := &types.UserAuth{
		ID:       "user-abc",
		Username: "roundtrip",
		Role:     types.RoleUser,
	}

	token, err := service.issueToken(user)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "roundtrip", claims.Username)
	assert.Equal(t, types.RoleUser, claims.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testConfig(), slog.Default())

	_, err := service.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	issuerCfg := testConfig()
	service := NewAuthService(mockRepo, issuerCfg, slog.Default())

	otherCfg := testConfig()
	otherCfg.JWT.SecretKey = "a-different-secret"
	other := NewAuthService(mockRepo, otherCfg, slog.Default())

	token, err := service.issueToken(&types.UserAuth{ID: "user-abc", Role: types.RoleUser})
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testConfig(), slog.Default())
	ctx := context.Background()

	token, err := service.issueToken(&types.UserAuth{ID: "user-abc", Username: "bob", Role: types.RoleUser})
	require.NoError(t, err)

	t.Run("ValidToken", func(t *testing.T) {
		assert.NoError(t, service.Logout(ctx, token))
	})

	t.Run("InvalidToken", func(t *testing.T) {
		err := service.Logout(ctx, "garbage")
		assert.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("TokenStillValidAfterLogout", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx, token))
		_, err := service.VerifyToken(token)
		assert.NoError(t, err)
	})
}

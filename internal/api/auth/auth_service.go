package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderke/wanderke-api/config"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the business logic contract for authentication.
type AuthService interface {
	// Register creates a new account and returns its ID. The raw
	// password is hashed with bcrypt before it reaches the repository.
	Register(ctx context.Context, username, email, password string) (string, error)

	// Login authenticates by email and password and returns the user
	// ID and a signed bearer token. Returns types.ErrUnauthenticated
	// when no user matches the email or the password is wrong, and
	// types.ErrForbidden when the account role is missing or unknown.
	Login(ctx context.Context, email, password string) (string, string, error)

	// Logout verifies the presented token and records the event. The
	// token stays valid until it expires; there is no revocation list.
	Logout(ctx context.Context, tokenString string) error

	// VerifyToken parses and validates a bearer token.
	VerifyToken(tokenString string) (*types.Claims, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	jwtCfg config.JWTConfig
	legacy *LegacyCipher
}

func NewAuthService(repo AuthRepo, cfg *config.Config, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		jwtCfg: cfg.JWT,
		legacy: NewLegacyCipher(cfg.Legacy.PasswordSecret),
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("username", username))
	l.DebugContext(ctx, "Registering new user")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.repo.Register(ctx, username, email, string(hashed))
	if err != nil {
		return "", err
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", userID))
	return userID, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, string, error) {
	l := s.logger.With(slog.String("method", "Login"))
	l.DebugContext(ctx, "Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Login attempt for unknown email")
			return "", "", fmt.Errorf("unknown email: %w", types.ErrUnauthenticated)
		}
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.checkPassword(ctx, user, password); err != nil {
		l.WarnContext(ctx, "Password verification failed", slog.String("userID", user.ID))
		return "", "", fmt.Errorf("wrong password: %w", types.ErrUnauthenticated)
	}

	if user.Role != types.RoleUser && user.Role != types.RoleAdmin {
		l.WarnContext(ctx, "Account has no valid role", slog.String("userID", user.ID), slog.String("role", user.Role))
		return "", "", fmt.Errorf("account role %q is not permitted: %w", user.Role, types.ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}

	l.InfoContext(ctx, "Login successful", slog.String("userID", user.ID))
	return user.ID, token, nil
}

// checkPassword verifies the supplied password against the stored
// record. Legacy encrypted records are decrypted for comparison and
// transparently rewritten as bcrypt hashes on success.
func (s *AuthServiceImpl) checkPassword(ctx context.Context, user *types.UserAuth, password string) error {
	if IsLegacyRecord(user.Password) {
		match, err := s.legacy.Compare(user.Password, password)
		if err != nil {
			return fmt.Errorf("failed to decrypt legacy record: %w", err)
		}
		if !match {
			return errors.New("password mismatch")
		}

		// Best effort: login succeeds even if the rehash write fails.
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err == nil {
			if uerr := s.repo.UpdatePasswordRecord(ctx, user.ID, string(hashed)); uerr != nil {
				s.logger.WarnContext(ctx, "Failed to migrate legacy password record",
					slog.String("userID", user.ID), slog.Any("error", uerr))
			} else {
				s.logger.InfoContext(ctx, "Migrated legacy password record to bcrypt",
					slog.String("userID", user.ID))
			}
		}
		return nil
	}

	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
}

func (s *AuthServiceImpl) issueToken(user *types.UserAuth) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthServiceImpl) VerifyToken(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token validation failed: %w", types.ErrInvalidToken)
	}
	return claims, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return err
	}

	// Tokens are stateless, so this only records the client's intent.
	s.logger.InfoContext(ctx, "User logged out",
		slog.String("userID", claims.UserID),
		slog.String("username", claims.Username))
	return nil
}

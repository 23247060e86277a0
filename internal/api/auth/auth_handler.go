package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/wanderke/wanderke-api/app/observability/metrics"
	"github.com/wanderke/wanderke-api/internal/api"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	authService AuthService
	metrics     *metrics.AppMetrics
	logger      *slog.Logger
}

// NewHandlerImpl creates a new auth HandlerImpl instance. The metrics
// instance may be nil in tests.
func NewHandlerImpl(authService AuthService, appMetrics *metrics.AppMetrics, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		authService: authService,
		metrics:     appMetrics,
		logger:      logger,
	}
}

func (h *HandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		l.WarnContext(ctx, "Missing required fields")
		api.ErrorResponse(w, r, http.StatusBadRequest, "username, email and password are required")
		return
	}

	userID, err := h.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			l.WarnContext(ctx, "Duplicate username", slog.String("username", req.Username))
			api.ErrorResponse(w, r, http.StatusConflict, "Username already exists")
			return
		}
		l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, RegisterResponse{ID: userID})
}

func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))
	start := time.Now()

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		l.WarnContext(ctx, "Missing email or password")
		api.ErrorResponse(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	userID, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if h.metrics != nil {
		h.metrics.LoginRequestsTotal.Add(ctx, 1)
		h.metrics.LoginDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		switch {
		case errors.Is(err, types.ErrUnauthenticated):
			l.WarnContext(ctx, "Invalid credentials")
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, types.ErrForbidden):
			l.WarnContext(ctx, "Account role not permitted")
			api.ErrorResponse(w, r, http.StatusForbidden, "Account is not permitted to log in")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, LoginResponse{ID: userID, Token: token})
}

// Logout runs behind the Authenticate middleware, so the token has
// already been verified; the service call records the event.
func (h *HandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Logout"))

	tokenString, ok := GetRawTokenFromContext(ctx)
	if !ok || tokenString == "" {
		l.ErrorContext(ctx, "Token not found in context")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Authorization header required")
		return
	}

	if err := h.authService.Logout(ctx, tokenString); err != nil {
		if errors.Is(err, types.ErrInvalidToken) {
			api.ErrorResponse(w, r, http.StatusForbidden, "Invalid or expired token")
			return
		}
		l.ErrorContext(ctx, "Logout failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to log out")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

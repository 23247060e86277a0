package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/api"
	"github.com/wanderke/wanderke-api/internal/api/auth"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetUser(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetUser returns the authenticated user's profile. A stale token
// pointing at a deleted account yields 401, not 404.
func (h *HandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUser"))

	userID, ok := h.authenticatedUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.userService.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Token references missing account", slog.String("userID", userID.String()))
			api.ErrorResponse(w, r, http.StatusUnauthorized, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get user profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}

func (h *HandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateUser"))

	if _, ok := h.authenticatedUserID(w, r); !ok {
		return
	}

	var req UpdateUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		l.WarnContext(ctx, "Missing email in update request")
		api.ErrorResponse(w, r, http.StatusBadRequest, "email is required")
		return
	}

	params := types.UpdateProfileParams{
		Username: req.Username,
		Profile:  req.Profile,
		Theme:    req.Theme,
	}

	updated, err := h.userService.UpdateUserProfile(ctx, req.Email, params)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusConflict, "Username already exists")
		default:
			l.ErrorContext(ctx, "Failed to update user", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, updated)
}

func (h *HandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteUser"))

	userID, ok := h.authenticatedUserID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete account", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, MessageResponse{Message: "Account deleted"})
}

func (h *HandlerImpl) authenticatedUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctx := r.Context()

	userIDStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userIDStr == "" {
		h.logger.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.ErrorContext(ctx, "Invalid user ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}

	return userID, true
}

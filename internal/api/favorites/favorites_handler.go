package favorites

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
	AddToFavorites(w http.ResponseWriter, r *http.Request)
	GetFavorites(w http.ResponseWriter, r *http.Request)
	RemoveFromFavorites(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	favoritesService FavoritesService
	logger           *slog.Logger
}

// NewHandlerImpl creates a new favorites HandlerImpl instance.
func NewHandlerImpl(favoritesService FavoritesService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		favoritesService: favoritesService,
		logger:           logger,
	}
}

// AddToFavorites appends a favourite. A missing user and a missing
// target both surface as 401 here, unlike the listing endpoints which
// use 404; clients depend on that split.
func (h *HandlerImpl) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "AddToFavorites"))

	userID, targetID, targetType, ok := h.decodeFavoriteRequest(w, r)
	if !ok {
		return
	}

	if err := h.favoritesService.Add(ctx, userID, targetID, targetType); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "User or target not found")
			return
		}
		l.ErrorContext(ctx, "Failed to add favorite", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"message": "Added to favorites"})
}

func (h *HandlerImpl) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetFavorites"))

	userID, ok := h.authenticatedUserID(w, r)
	if !ok {
		return
	}

	resolved, err := h.favoritesService.List(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to list favorites", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.FavoritesResponse{Favorites: resolved})
}

func (h *HandlerImpl) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "RemoveFromFavorites"))

	userID, targetID, targetType, ok := h.decodeFavoriteRequest(w, r)
	if !ok {
		return
	}

	if err := h.favoritesService.Remove(ctx, userID, targetID, targetType); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to remove favorite", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"message": "Removed from favorites"})
}

func (h *HandlerImpl) decodeFavoriteRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, types.TargetType, bool) {
	ctx := r.Context()

	userID, ok := h.authenticatedUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, "", false
	}

	var req types.AddFavoriteRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, "", false
	}
	if req.ItemID == "" || req.ItemType == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "itemId and itemType are required")
		return uuid.Nil, uuid.Nil, "", false
	}

	targetID, err := uuid.Parse(req.ItemID)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itemId format")
		return uuid.Nil, uuid.Nil, "", false
	}

	return userID, targetID, req.ItemType, true
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

package place

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/internal/api"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetPlaces(w http.ResponseWriter, r *http.Request)
	GetPlace(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	placeService PlaceService
	logger       *slog.Logger
}

func NewHandlerImpl(placeService PlaceService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		placeService: placeService,
		logger:       logger,
	}
}

// GetPlaces lists the places of the county given in the query string.
func (h *HandlerImpl) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetPlaces"))

	countyID, err := uuid.Parse(r.URL.Query().Get("county"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "county query parameter must be a valid ID")
		return
	}

	places, err := h.placeService.GetPlacesByCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list places", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list places")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

func (h *HandlerImpl) GetPlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetPlace"))

	placeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid place ID format")
		return
	}

	place, err := h.placeService.GetPlace(ctx, placeID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Place not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get place", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get place")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, place)
}

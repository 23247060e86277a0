package county

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
	GetCounties(w http.ResponseWriter, r *http.Request)
	GetCounty(w http.ResponseWriter, r *http.Request)
	GetCountyEvents(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	countyService CountyService
	logger        *slog.Logger
}

func NewHandlerImpl(countyService CountyService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		countyService: countyService,
		logger:        logger,
	}
}

func (h *HandlerImpl) GetCounties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetCounties"))

	counties, err := h.countyService.GetCounties(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list counties", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list counties")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, counties)
}

func (h *HandlerImpl) GetCounty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetCounty"))

	countyID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	county, err := h.countyService.GetCounty(ctx, countyID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "County not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get county", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get county")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, county)
}

func (h *HandlerImpl) GetCountyEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetCountyEvents"))

	countyID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	events, err := h.countyService.GetEventsByCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list events", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list events")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, events)
}

func (h *HandlerImpl) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	countyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid county ID format")
		return uuid.Nil, false
	}
	return countyID, true
}

package hotel

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
	GetHotels(w http.ResponseWriter, r *http.Request)
	GetHotel(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	hotelService HotelService
	logger       *slog.Logger
}

func NewHandlerImpl(hotelService HotelService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		hotelService: hotelService,
		logger:       logger,
	}
}

// GetHotels lists the hotels of the county given in the query string.
func (h *HandlerImpl) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetHotels"))

	countyID, err := uuid.Parse(r.URL.Query().Get("county"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "county query parameter must be a valid ID")
		return
	}

	hotels, err := h.hotelService.GetHotelsByCounty(ctx, countyID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list hotels", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list hotels")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

func (h *HandlerImpl) GetHotel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetHotel"))

	hotelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID format")
		return
	}

	hotel, err := h.hotelService.GetHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Hotel not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get hotel", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get hotel")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

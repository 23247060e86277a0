package media

import (
	"log/slog"
	"net/http"

	"github.com/wanderke/wanderke-api/internal/api"
	"github.com/wanderke/wanderke-api/internal/api/auth"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetUploadURL(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	mediaService MediaService
	logger       *slog.Logger
}

func NewHandlerImpl(mediaService MediaService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		mediaService: mediaService,
		logger:       logger,
	}
}

// GetUploadURL runs behind the Authenticate middleware.
func (h *HandlerImpl) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUploadURL"))

	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	ticket, err := h.mediaService.GetUploadURL(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue upload URL", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to issue upload URL")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ticket)
}

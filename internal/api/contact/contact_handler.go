package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/wanderke/wanderke-api/internal/api"
	"github.com/wanderke/wanderke-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	SubmitMessage(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	contactService ContactService
	logger         *slog.Logger
}

func NewHandlerImpl(contactService ContactService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		contactService: contactService,
		logger:         logger,
	}
}

func (h *HandlerImpl) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "SubmitMessage"))

	var msg types.ContactMessage
	if err := api.DecodeJSONBody(w, r, &msg); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.contactService.SubmitMessage(ctx, msg)
	if err != nil {
		if errors.Is(err, types.ErrBadRequest) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "name, email and message are required")
			return
		}
		l.ErrorContext(ctx, "Failed to submit message", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to submit message")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"id": id.String()})
}

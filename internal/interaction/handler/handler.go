package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"recom/internal/interaction/models"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/platform/httputil"
	"recom/pkg/requestcontext"
)

type Service interface {
	CreateInteraction(ctx context.Context, candidate models.Candidate) (*models.Interaction, error)
	Get(ctx context.Context, id int64) (*models.Interaction, error)
	List(ctx context.Context, userID int64) ([]*models.Interaction, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/interactions", h.HandleCreate)
	r.Get("/interactions", h.HandleList)
	r.Get("/interactions/{id}", h.HandleGet)
	r.Delete("/interactions/{id}", h.HandleDelete)
}

// HandleCreate records an interaction after confirming its user and product
// exist. A missing or unreachable reference yields 400 validation_error.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateInteractionRequest](w, r, h.logger)
	if !ok {
		return
	}

	interaction, err := h.service.CreateInteraction(ctx, req.Candidate())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.WarnContext(ctx, "interaction rejected", "error", err, "request_id", requestID)
		} else {
			h.logger.ErrorContext(ctx, "create interaction failed", "error", err, "request_id", requestID)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toInteractionResponse(interaction))
}

// HandleList lists interactions, optionally only those of ?userId=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var userID int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid userId"))
			return
		}
		userID = v
	}

	list, err := h.service.List(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list interactions failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	out := make([]*InteractionResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toInteractionResponse(i))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interactionID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	interaction, err := h.service.Get(ctx, interactionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get interaction failed", "error", err, "interaction_id", interactionID, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toInteractionResponse(interaction))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interactionID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, interactionID); err != nil {
		h.logger.WarnContext(ctx, "delete interaction failed", "error", err, "interaction_id", interactionID, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

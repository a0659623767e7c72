package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"recom/internal/recommendation/service"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/platform/httputil"
	"recom/pkg/requestcontext"
)

type Service interface {
	Recommend(ctx context.Context, userID int64, limit int) ([]service.Recommendation, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/recommendations/{userId}", h.HandleRecommend)
}

type RecommendationResponse struct {
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Score       float64     `json:"score"`
}

// HandleRecommend serves GET /recommendations/{userId}?limit=N.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.PathID(r, "userId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid limit"))
			return
		}
	}

	recs, err := h.service.Recommend(ctx, userID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "recommend failed", "error", err, "user_id", userID, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}

	out := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RecommendationResponse{
			ProductID:   rec.Product.ID,
			ProductName: rec.Product.Name,
			Category:    rec.Product.Category,
			Price:       json.Number(rec.Product.Price.String()),
			Score:       rec.Score,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

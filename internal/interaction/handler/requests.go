package handler

import (
	"strings"
	"time"

	"recom/internal/interaction/models"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/validation"
)

type CreateInteractionRequest struct {
	UserID          int64  `json:"userId" validate:"gt=0"`
	ProductID       int64  `json:"productId" validate:"gt=0"`
	InteractionType string `json:"interactionType" validate:"notblank,max=64"`
}

func (r *CreateInteractionRequest) Normalize() {
	if r == nil {
		return
	}
	r.InteractionType = strings.TrimSpace(r.InteractionType)
}

func (r *CreateInteractionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *CreateInteractionRequest) Candidate() models.Candidate {
	return models.Candidate{UserID: r.UserID, ProductID: r.ProductID, Type: r.InteractionType}
}

type InteractionResponse struct {
	InteractionID   int64     `json:"interactionId"`
	UserID          int64     `json:"userId"`
	ProductID       int64     `json:"productId"`
	InteractionType string    `json:"interactionType"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toInteractionResponse(i *models.Interaction) *InteractionResponse {
	return &InteractionResponse{
		InteractionID:   i.ID,
		UserID:          i.UserID,
		ProductID:       i.ProductID,
		InteractionType: i.Type,
		CreatedAt:       i.CreatedAt.UTC(),
	}
}

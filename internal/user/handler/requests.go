package handler

import (
	"strings"

	"recom/internal/user/models"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/validation"
)

type UserRequest struct {
	Name  string `json:"name" validate:"notblank,max=255"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
}

func (r *UserRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *UserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *UserRequest) Profile() models.Profile {
	return models.Profile{Name: r.Name, Email: r.Email}
}

type UserResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func toUserResponse(u *models.User) *UserResponse {
	return &UserResponse{UserID: u.ID, Name: u.Name, Email: u.Email}
}

package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"recom/internal/product/models"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/validation"
)

// ProductRequest is the body of both create and update; updates replace every field.
type ProductRequest struct {
	ProductName string          `json:"productName" validate:"notblank,max=255"`
	Category    string          `json:"category" validate:"max=100"`
	Price       decimal.Decimal `json:"price" validate:"gte=0,lt=10000000000,maxscale=2"`
}

func (r *ProductRequest) Normalize() {
	if r == nil {
		return
	}
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Category = strings.TrimSpace(r.Category)
}

func (r *ProductRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *ProductRequest) Fields() models.Fields {
	return models.Fields{Name: r.ProductName, Category: r.Category, Price: r.Price}
}

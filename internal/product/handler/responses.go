package handler

import (
	"encoding/json"

	"recom/internal/product/models"
)

// ProductResponse renders price as a JSON number.
type ProductResponse struct {
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
}

func toProductResponse(p *models.Product) *ProductResponse {
	return &ProductResponse{
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		Price:       json.Number(p.Price.String()),
	}
}

func toProductResponses(products []*models.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

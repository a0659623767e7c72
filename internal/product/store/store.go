// Package store persists products. Both implementations return
// sentinel.ErrNotFound for unknown ids.
package store

import (
	"context"

	"recom/internal/product/models"
)

type Store interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, category string) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int64) error
}

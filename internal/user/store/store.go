// Package store persists users. Unknown ids yield sentinel.ErrNotFound.
package store

import (
	"context"

	"recom/internal/user/models"
)

type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}

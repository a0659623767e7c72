// Package store persists interaction records. Unknown ids yield sentinel.ErrNotFound.
package store

import (
	"context"

	"recom/internal/interaction/models"
)

type Store interface {
	Create(ctx context.Context, i *models.Interaction) error
	FindByID(ctx context.Context, id int64) (*models.Interaction, error)
	// List returns interactions ordered by id; userID 0 matches all users.
	List(ctx context.Context, userID int64) ([]*models.Interaction, error)
	Delete(ctx context.Context, id int64) error
}

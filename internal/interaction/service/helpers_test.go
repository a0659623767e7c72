package service

import (
	"fmt"

	"recom/internal/sentinel"
)

func errNotFound() error {
	return fmt.Errorf("find interaction: %w", sentinel.ErrNotFound)
}

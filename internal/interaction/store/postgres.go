package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recom/internal/interaction/models"
	"recom/internal/sentinel"
)

// PostgresStore persists interactions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, i *models.Interaction) error {
	query := `
		INSERT INTO interactions (user_id, product_id, interaction_type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := s.db.QueryRowContext(ctx, query, i.UserID, i.ProductID, i.Type, i.CreatedAt)
	if err := row.Scan(&i.ID, &i.CreatedAt); err != nil {
		return fmt.Errorf("create interaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Interaction, error) {
	query := `
		SELECT id, user_id, product_id, interaction_type, created_at
		FROM interactions
		WHERE id = $1
	`
	var i models.Interaction
	err := s.db.QueryRowContext(ctx, query, id).Scan(&i.ID, &i.UserID, &i.ProductID, &i.Type, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find interaction by id: %w", err)
	}
	return &i, nil
}

func (s *PostgresStore) List(ctx context.Context, userID int64) ([]*models.Interaction, error) {
	query := `
		SELECT id, user_id, product_id, interaction_type, created_at
		FROM interactions
		WHERE $1::BIGINT = 0 OR user_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var out []*models.Interaction
	for rows.Next() {
		var i models.Interaction
		if err := rows.Scan(&i.ID, &i.UserID, &i.ProductID, &i.Type, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete interaction rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

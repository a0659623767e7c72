package service

import (
	"context"
	"fmt"
	"log/slog"

	"recom/internal/interaction/models"
	"recom/internal/recommendation/catalog"
	"recom/internal/recommendation/engine"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/validation"
)

// Interactions lists the stored interactions of one user.
type Interactions interface {
	List(ctx context.Context, userID int64) ([]*models.Interaction, error)
}

// Catalog returns every product the product service knows.
type Catalog interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// Recommendation is a product suggested to a user.
type Recommendation struct {
	Product catalog.Product
	Score   float64
}

type Service struct {
	interactions Interactions
	catalog      Catalog
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(interactions Interactions, products Catalog, opts ...Option) *Service {
	s := &Service{
		interactions: interactions,
		catalog:      products,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend ranks catalog products for userID. A user without interactions
// gets an empty list and the catalog is not consulted.
func (s *Service) Recommend(ctx context.Context, userID int64, limit int) ([]Recommendation, error) {
	if userID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "userId must be a positive integer")
	}
	if limit == 0 {
		limit = engine.DefaultLimit
	}
	if limit < 0 || limit > validation.MaxRecommendationLimit {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("limit must be between 1 and %d", validation.MaxRecommendationLimit))
	}

	history, err := s.interactions.List(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load interactions")
	}
	if len(history) == 0 {
		return []Recommendation{}, nil
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "product catalog unavailable", "error", err, "user_id", userID)
		return nil, err
	}

	events := make([]engine.Event, 0, len(history))
	for _, i := range history {
		events = append(events, engine.Event{ProductID: i.ProductID, Type: i.Type})
	}
	byID := make(map[int64]catalog.Product, len(products))
	items := make([]engine.Item, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		items = append(items, engine.Item{ProductID: p.ID, Category: p.Category, Price: p.Price.InexactFloat64()})
	}

	scored := engine.Recommend(items, events, limit)
	out := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		out = append(out, Recommendation{Product: byID[sc.ProductID], Score: sc.Score})
	}
	return out, nil
}

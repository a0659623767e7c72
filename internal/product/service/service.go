package service

import (
	"context"
	"errors"
	"log/slog"

	"recom/internal/product/models"
	"recom/internal/product/store"
	"recom/internal/sentinel"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/requestcontext"
)

// Service manages the product catalog.
type Service struct {
	products store.Store
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(products store.Store, opts ...Option) *Service {
	s := &Service{products: products, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, f models.Fields) (*models.Product, error) {
	now := requestcontext.Now(ctx)
	p := &models.Product{CreatedAt: now}
	p.Apply(f, now)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create product")
	}
	s.logger.InfoContext(ctx, "product created",
		"product_id", p.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, wrapProductErr(err, "failed to load product")
	}
	return p, nil
}

// List returns every product, or only those in category when it is set.
func (s *Service) List(ctx context.Context, category string) ([]*models.Product, error) {
	products, err := s.products.List(ctx, category)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list products")
	}
	return products, nil
}

func (s *Service) Update(ctx context.Context, id int64, f models.Fields) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, wrapProductErr(err, "failed to load product")
	}
	p.Apply(f, requestcontext.Now(ctx))
	if err := s.products.Update(ctx, p); err != nil {
		return nil, wrapProductErr(err, "failed to update product")
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return wrapProductErr(err, "failed to delete product")
	}
	s.logger.InfoContext(ctx, "product deleted",
		"product_id", id,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func wrapProductErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "product not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

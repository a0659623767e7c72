package service

import (
	"context"
	"errors"
	"log/slog"

	"recom/internal/sentinel"
	"recom/internal/user/models"
	"recom/internal/user/store"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/requestcontext"
)

// Service manages user profiles.
type Service struct {
	users  store.Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(users store.Store, opts ...Option) *Service {
	s := &Service{users: users, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, p models.Profile) (*models.User, error) {
	now := requestcontext.Now(ctx)
	u := &models.User{CreatedAt: now}
	u.Apply(p, now)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "request_id", requestcontext.RequestID(ctx))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, wrapUserErr(err, "failed to load user")
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, id int64, p models.Profile) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, wrapUserErr(err, "failed to load user")
	}
	u.Apply(p, requestcontext.Now(ctx))
	if err := s.users.Update(ctx, u); err != nil {
		return nil, wrapUserErr(err, "failed to update user")
	}
	return u, nil
}

// Delete removes the user. Interactions that reference it are left in place.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return wrapUserErr(err, "failed to delete user")
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "request_id", requestcontext.RequestID(ctx))
	return nil
}

func wrapUserErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

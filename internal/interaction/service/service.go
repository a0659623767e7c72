package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"recom/internal/interaction/existence"
	"recom/internal/interaction/metrics"
	"recom/internal/interaction/models"
	"recom/internal/interaction/tracer"
	"recom/internal/sentinel"
	dErrors "recom/pkg/domain-errors"
	"recom/pkg/requestcontext"
)

// Checker reports whether id resolves at baseAddress.
type Checker interface {
	Check(ctx context.Context, baseAddress string, id int64) (existence.Outcome, error)
}

type Store interface {
	Create(ctx context.Context, i *models.Interaction) error
	FindByID(ctx context.Context, id int64) (*models.Interaction, error)
	List(ctx context.Context, userID int64) ([]*models.Interaction, error)
	Delete(ctx context.Context, id int64) error
}

// Publisher announces persisted interactions. Failures never fail the write.
type Publisher interface {
	Publish(ctx context.Context, i *models.Interaction) error
}

// DefaultCheckTimeout bounds the whole reference validation phase.
const DefaultCheckTimeout = 3 * time.Second

// Config points the service at the user and product services.
// The URLs include the resource path, e.g. http://users:8080/users.
type Config struct {
	UserServiceURL    string
	ProductServiceURL string
	CheckTimeout      time.Duration
	// Concurrent issues both checks at once; otherwise the product check is
	// skipped when the user check fails.
	Concurrent bool
}

// Service records interactions whose user and product both exist at write time.
type Service struct {
	interactions Store
	checker      Checker
	cfg          Config
	publisher    Publisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func New(interactions Store, checker Checker, cfg Config, opts ...Option) (*Service, error) {
	if interactions == nil || checker == nil {
		return nil, errors.New("interaction store and existence checker are required")
	}
	if cfg.UserServiceURL == "" || cfg.ProductServiceURL == "" {
		return nil, errors.New("user and product service URLs are required")
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = DefaultCheckTimeout
	}

	s := &Service{
		interactions: interactions,
		checker:      checker,
		cfg:          cfg,
		logger:       slog.Default(),
		tracer:       tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateInteraction validates the candidate's shape, confirms both references
// exist remotely, then persists it. Nothing is written on rejection.
func (s *Service) CreateInteraction(ctx context.Context, candidate models.Candidate) (_ *models.Interaction, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCreateInteraction,
		tracer.Int64(tracer.AttrUserID, candidate.UserID),
		tracer.Int64(tracer.AttrProductID, candidate.ProductID),
	)
	defer func() { span.End(err) }()

	if err := candidate.Validate(); err != nil {
		s.metrics.IncRejected(metrics.ReasonInvalid)
		return nil, err
	}

	if err := s.validateReferences(ctx, candidate); err != nil {
		s.metrics.IncRejected(rejectionReason(err))
		span.AddEvent(tracer.EventRejected)
		s.logger.InfoContext(ctx, "interaction rejected",
			"user_id", candidate.UserID,
			"product_id", candidate.ProductID,
			"reason", rejectionReason(err),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}

	interaction := &models.Interaction{
		UserID:    candidate.UserID,
		ProductID: candidate.ProductID,
		Type:      candidate.Type,
		CreatedAt: requestcontext.Now(ctx).UTC().Truncate(time.Microsecond),
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record interaction")
	}

	s.metrics.IncCreated()
	span.AddEvent(tracer.EventPersisted, tracer.Int64(tracer.AttrInteractionID, interaction.ID))
	s.logger.InfoContext(ctx, "interaction recorded",
		"interaction_id", interaction.ID,
		"user_id", interaction.UserID,
		"product_id", interaction.ProductID,
		"interaction_type", interaction.Type,
		"request_id", requestcontext.RequestID(ctx),
	)

	s.publish(ctx, interaction)
	return interaction, nil
}

func (s *Service) publish(ctx context.Context, i *models.Interaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, i); err != nil {
		s.metrics.IncPublishFailure()
		s.logger.WarnContext(ctx, "failed to publish interaction event",
			"interaction_id", i.ID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Interaction, error) {
	i, err := s.interactions.FindByID(ctx, id)
	if err != nil {
		return nil, wrapInteractionErr(err, "failed to load interaction")
	}
	return i, nil
}

// List returns all interactions, or a single user's when userID is non-zero.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Interaction, error) {
	if userID < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "userId must be a positive integer")
	}
	list, err := s.interactions.List(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list interactions")
	}
	return list, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.interactions.Delete(ctx, id); err != nil {
		return wrapInteractionErr(err, "failed to delete interaction")
	}
	return nil
}

func wrapInteractionErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "interaction not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

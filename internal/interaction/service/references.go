package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"recom/internal/interaction/existence"
	"recom/internal/interaction/models"
	"recom/internal/interaction/tracer"
	"recom/pkg/requestcontext"
)

// validateReferences checks the user then the product under one deadline.
// Results are always evaluated user first, so the reported reason does not
// depend on which concurrent check finished first.
func (s *Service) validateReferences(ctx context.Context, c models.Candidate) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, tracer.SpanValidateRefs, tracer.Bool(tracer.AttrConcurrent, s.cfg.Concurrent))
	defer func() { span.End(err) }()

	if !s.cfg.Concurrent {
		if err := rejection(targetUser, s.check(ctx, targetUser, s.cfg.UserServiceURL, c.UserID)); err != nil {
			return err
		}
		return rejection(targetProduct, s.check(ctx, targetProduct, s.cfg.ProductServiceURL, c.ProductID))
	}

	// A plain Group: one check failing must not cancel the other.
	var user, product checkResult
	var g errgroup.Group
	g.Go(func() error {
		user = s.check(ctx, targetUser, s.cfg.UserServiceURL, c.UserID)
		return nil
	})
	g.Go(func() error {
		product = s.check(ctx, targetProduct, s.cfg.ProductServiceURL, c.ProductID)
		return nil
	})
	_ = g.Wait()

	if err := rejection(targetUser, user); err != nil {
		return err
	}
	return rejection(targetProduct, product)
}

// check runs one existence check. Any error forces Unreachable.
func (s *Service) check(ctx context.Context, target, baseAddress string, id int64) checkResult {
	ctx, span := s.tracer.Start(ctx, tracer.SpanExistenceCheck,
		tracer.String(tracer.AttrTarget, target),
		tracer.Int64(tracer.AttrEntityID, id),
	)

	start := time.Now()
	outcome, err := s.checker.Check(ctx, baseAddress, id)
	if err != nil {
		outcome = existence.Unreachable
	}
	elapsed := time.Since(start)

	s.metrics.ObserveCheck(target, outcome.String(), elapsed.Seconds())
	span.SetAttributes(
		tracer.String(tracer.AttrOutcome, outcome.String()),
		tracer.Duration(tracer.AttrDurationMs, elapsed),
	)
	if category := existence.CategoryOf(err); category != "" {
		span.SetAttributes(tracer.String(tracer.AttrCategory, string(category)))
	}
	span.End(err)

	if outcome != existence.Found {
		s.logger.WarnContext(ctx, "existence check failed",
			"target", target,
			"id", id,
			"outcome", outcome.String(),
			"category", string(existence.CategoryOf(err)),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return checkResult{outcome: outcome, err: err}
}

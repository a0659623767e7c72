// Package app assembles services from configuration. cmd/recom and the
// feature tests both build their HTTP stacks here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"recom/internal/interaction/events"
	"recom/internal/interaction/existence"
	interactionHandler "recom/internal/interaction/handler"
	interactionMetrics "recom/internal/interaction/metrics"
	interactionService "recom/internal/interaction/service"
	interactionStore "recom/internal/interaction/store"
	"recom/internal/interaction/tracer"
	"recom/internal/platform/config"
	"recom/internal/platform/database"
	"recom/internal/platform/health"
	"recom/internal/platform/kafka/producer"
	productHandler "recom/internal/product/handler"
	productService "recom/internal/product/service"
	productStore "recom/internal/product/store"
	"recom/internal/recommendation/catalog"
	recommendationHandler "recom/internal/recommendation/handler"
	recommendationService "recom/internal/recommendation/service"
	httptransport "recom/internal/transport/http"
	userHandler "recom/internal/user/handler"
	userService "recom/internal/user/service"
	userStore "recom/internal/user/store"
)

// Service names accepted by New.
const (
	Product     = "product"
	User        = "user"
	Interaction = "interaction"
	All         = "all"
)

// ParseServices expands a service name into the set of services it serves.
func ParseServices(name string) ([]string, error) {
	switch name {
	case Product, User, Interaction:
		return []string{name}, nil
	case All, "":
		return []string{Product, User, Interaction}, nil
	default:
		return nil, fmt.Errorf("unknown service %q: want product, user, interaction or all", name)
	}
}

// App is one assembled process: its router and the resources it owns.
type App struct {
	Handler  http.Handler
	Health   *health.Handler
	Registry *prometheus.Registry

	pool     *database.Pool
	producer *producer.Producer
	logger   *slog.Logger
}

// Options override resources New would otherwise build from configuration.
type Options struct {
	// HTTPClient is shared by every outbound call. Defaults to a client with
	// connection pooling and no overall timeout; deadlines come from contexts.
	HTTPClient *http.Client
	Tracer     tracer.Tracer
}

// New builds the named services. With an empty DATABASE_URL every store is
// in memory; with no Kafka brokers interaction events are not published.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, services []string, opts Options) (*App, error) {
	a := &App{
		Registry: prometheus.NewRegistry(),
		Health:   health.New(serviceLabel(services), cfg.Environment),
		logger:   logger,
	}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	if opts.Tracer == nil {
		opts.Tracer = tracer.NewOTel(nil)
	}

	pool, err := database.New(ctx, database.Config{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}
	a.pool = pool
	if pool != nil {
		a.Health.RegisterCheck("database", pool.Health)
		a.Registry.MustRegister(pool.Collector())
		logger.Info("using postgres stores")
	} else {
		logger.Info("DATABASE_URL not set, using in-memory stores")
	}

	var handlers []httptransport.Registrar
	if slices.Contains(services, Product) {
		handlers = append(handlers, a.productHandler())
	}
	if slices.Contains(services, User) {
		handlers = append(handlers, a.userHandler())
	}
	if slices.Contains(services, Interaction) {
		hs, err := a.interactionHandlers(cfg, opts)
		if err != nil {
			a.Close(time.Second)
			return nil, err
		}
		handlers = append(handlers, hs...)
	}

	a.Handler = httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		Registry:       a.Registry,
		Health:         a.Health,
	}, handlers...)
	return a, nil
}

// DB returns the shared connection pool, or nil for in-memory mode.
func (a *App) DB() *sql.DB {
	if a.pool == nil {
		return nil
	}
	return a.pool.DB()
}

func (a *App) productHandler() *productHandler.Handler {
	var store productStore.Store = productStore.NewInMemory()
	if db := a.DB(); db != nil {
		store = productStore.NewPostgres(db)
	}
	svc := productService.New(store, productService.WithLogger(a.logger))
	return productHandler.New(svc, a.logger)
}

func (a *App) userHandler() *userHandler.Handler {
	var store userStore.Store = userStore.NewInMemory()
	if db := a.DB(); db != nil {
		store = userStore.NewPostgres(db)
	}
	svc := userService.New(store, userService.WithLogger(a.logger))
	return userHandler.New(svc, a.logger)
}

// interactionHandlers serves interactions and the recommendations computed from them.
func (a *App) interactionHandlers(cfg config.Server, opts Options) ([]httptransport.Registrar, error) {
	var store interactionStore.Store = interactionStore.NewInMemory()
	if db := a.DB(); db != nil {
		store = interactionStore.NewPostgres(db)
	}

	svcOpts := []interactionService.Option{
		interactionService.WithLogger(a.logger),
		interactionService.WithMetrics(interactionMetrics.New(a.Registry)),
		interactionService.WithTracer(opts.Tracer),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		p, err := producer.New(producer.Config{
			Brokers:         cfg.Kafka.Brokers,
			DeliveryTimeout: 30 * time.Second,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		a.producer = p
		a.Health.RegisterCheck("kafka", p.Ping)
		svcOpts = append(svcOpts, interactionService.WithPublisher(events.NewPublisher(p, cfg.Kafka.Topic)))
	} else {
		a.logger.Info("KAFKA_BROKERS not set, interaction events disabled")
		svcOpts = append(svcOpts, interactionService.WithPublisher(events.NewPublisher(producer.NewNoopProducer(), cfg.Kafka.Topic)))
	}

	svc, err := interactionService.New(store, existence.NewHTTPChecker(opts.HTTPClient), interactionService.Config{
		UserServiceURL:    cfg.Upstreams.UserServiceURL,
		ProductServiceURL: cfg.Upstreams.ProductServiceURL,
		CheckTimeout:      cfg.Existence.Timeout,
		Concurrent:        cfg.Existence.Concurrent,
	}, svcOpts...)
	if err != nil {
		return nil, err
	}

	recommender := recommendationService.New(store,
		catalog.NewClient(opts.HTTPClient, cfg.Upstreams.ProductServiceURL),
		recommendationService.WithLogger(a.logger))

	return []httptransport.Registrar{
		interactionHandler.New(svc, a.logger),
		recommendationHandler.New(recommender, a.logger),
	}, nil
}

// Close flushes pending events and releases the database pool.
func (a *App) Close(timeout time.Duration) {
	if a.producer != nil {
		if err := a.producer.Close(timeout); err != nil {
			a.logger.Error("failed to close kafka producer", "error", err)
		}
	}
	if err := a.pool.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
}

func serviceLabel(services []string) string {
	if len(services) == 1 {
		return "recom-" + services[0]
	}
	return "recom"
}

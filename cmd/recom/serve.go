package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"recom/internal/app"
	"recom/internal/platform/config"
	"recom/internal/platform/httpserver"
	"recom/internal/platform/logger"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [product|user|interaction|all]",
		Short: "Run one service, or all of them on one listener",
		Long: `Run an HTTP service until SIGINT or SIGTERM.

Examples:
  recom serve product --addr :8082
  USER_SERVICE_URL=http://users:8080/users PRODUCT_SERVICE_URL=http://products:8080/products recom serve interaction
  recom serve all

In "all" mode, unset USER_SERVICE_URL and PRODUCT_SERVICE_URL point at the
process's own listener.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{app.Product, app.User, app.Interaction, app.All},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := app.All
			if len(args) == 1 {
				name = args[0]
			}
			return runServe(cmd.Context(), root, name)
		},
	}
}

func runServe(ctx context.Context, root *rootOptions, name string) error {
	services, err := app.ParseServices(name)
	if err != nil {
		return err
	}
	cfg, err := serveConfig(root, services)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing recom",
		"services", services,
		"addr", cfg.Addr,
		"user_service_url", cfg.Upstreams.UserServiceURL,
		"product_service_url", cfg.Upstreams.ProductServiceURL,
		"environment", cfg.Environment,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, services, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close(cfg.ShutdownTimeout)

	return httpserver.Run(ctx, httpserver.New(cfg.Addr, a.Handler), log, cfg.ShutdownTimeout)
}

// serveConfig loads the environment and resolves upstream URLs for the
// services this process will run.
func serveConfig(root *rootOptions, services []string) (config.Server, error) {
	cfg := root.load()
	colocated := slices.Contains(services, app.User) && slices.Contains(services, app.Product)
	if err := cfg.ResolveUpstreams(colocated); err != nil {
		return config.Server{}, err
	}
	return cfg, nil
}

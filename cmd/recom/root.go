package main

import (
	"github.com/spf13/cobra"

	"recom/internal/platform/config"
	"recom/internal/platform/health"
)

type rootOptions struct {
	addr string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "recom",
		Short: "Product, user and interaction services",
		Long: `recom runs the product, user and interaction services, separately or in one process.

Configuration is read from the environment (DATABASE_URL, USER_SERVICE_URL,
PRODUCT_SERVICE_URL, KAFKA_BROKERS, ...). Flags override the environment.`,
		Version:       health.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.addr, "addr", "", "listen address (overrides ADDR)")

	cmd.AddCommand(newServeCmd(opts), newSchemaCmd())
	return cmd
}

// load reads the environment and applies flag overrides.
func (o *rootOptions) load() config.Server {
	cfg := config.FromEnv()
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	return cfg
}

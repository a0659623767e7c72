package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"recom/internal/platform/database"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the relational schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create the products, users and interactions tables if missing",
		Long: `Apply the embedded schema to DATABASE_URL. The schema is idempotent and
safe to run on every deploy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchemaApply(cmd.Context(), cmd)
		},
	})
	return cmd
}

func runSchemaApply(ctx context.Context, cmd *cobra.Command) error {
	cfg := (&rootOptions{}).load()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	pool, err := database.New(ctx, database.Config{URL: cfg.Database.URL})
	if err != nil {
		return err
	}
	defer pool.Close() //nolint:errcheck // process exits next

	if err := pool.ApplySchema(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
	return nil
}

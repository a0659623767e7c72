//go:build integration

// Package containers starts the throwaway PostgreSQL used by integration
// tests. One container serves every suite in a test binary.
package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"recom/internal/platform/database"
)

// recomTables is every table created by the schema, children first.
var recomTables = []string{"interactions", "products", "users"}

type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

var sharedPostgres = sync.OnceValues(startPostgres)

// Postgres returns the shared container, starting it and applying the schema
// on first use. Ryuk reaps it when the test process exits.
func Postgres(t *testing.T) *PostgresContainer {
	t.Helper()
	pc, err := sharedPostgres()
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	return pc
}

func startPostgres() (*PostgresContainer, error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:18-alpine",
		postgres.WithDatabase("recom_test"),
		postgres.WithUsername("recom"),
		postgres.WithPassword("recom_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	pool, err := database.New(ctx, database.Config{URL: dsn, MaxOpenConns: 20})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := pool.ApplySchema(ctx); err != nil {
		_ = pool.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: pool.DB()}, nil
}

// TruncateTables empties tables and resets their identity sequences, so ids
// restart at 1 for the next test.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	stmt := "TRUNCATE TABLE " + strings.Join(tables, ", ") + " RESTART IDENTITY"
	if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("truncate %s: %w", strings.Join(tables, ", "), err)
	}
	return nil
}

func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	return p.TruncateTables(ctx, recomTables...)
}

// Package testhelper starts a throwaway Postgres for repository tests.
package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	pgrepo "github.com/ivankudzin/tailmates/internal/repo/postgres"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB starts one Postgres container per test binary, applies the
// embedded migrations and returns a pool closed on test cleanup. Tables are
// truncated so every test starts empty.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgrepo.NewPool(ctx, sharedDSN, 20)
	if err != nil {
		t.Fatalf("testhelper: failed to create pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE matches, interactions, pets, accounts`); err != nil {
		t.Fatalf("testhelper: truncate tables: %v", err)
	}

	return pool
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "tailmates",
				"POSTGRES_PASSWORD": "tailmates",
				"POSTGRES_DB":       "tailmates_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://tailmates:tailmates@%s:%s/tailmates_test?sslmode=disable", host, port.Port())
	if _, err := pgrepo.Migrate(ctx, dsn); err != nil {
		return "", err
	}
	return dsn, nil
}

// SeedAccount inserts an account row; pets reference their owner.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, id int64, role string) {
	t.Helper()

	if _, err := pool.Exec(context.Background(),
		`INSERT INTO accounts (id, role) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, id, role); err != nil {
		t.Fatalf("testhelper: seed account %d: %v", id, err)
	}
}

//go:build integration

package containers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a PostgreSQL container and opens a database
// handle against it.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("recscope_test"),
		tcpostgres.WithUsername("recscope"),
		tcpostgres.WithPassword("recscope"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}
}

// TruncateTables removes all rows from the given tables. Use between tests
// to ensure isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

// ApplySchema creates the store tables. Idempotent, so suites sharing one
// container can each call it.
func (p *PostgresContainer) ApplySchema(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, schemaDDL)
	return err
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS intake_attributes (
	id UUID PRIMARY KEY,
	tenant_id UUID NOT NULL,
	organization_name TEXT NOT NULL,
	structure_type TEXT NOT NULL,
	total_facilities INT NOT NULL,
	international_shipments BOOLEAN NOT NULL DEFAULT FALSE,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	submitted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS facility_attributes (
	id UUID PRIMARY KEY,
	tenant_id UUID NOT NULL,
	name TEXT NOT NULL,
	processing_activities TEXT[] NOT NULL,
	data_bearing_handling BOOLEAN NOT NULL DEFAULT FALSE,
	focus_materials_presence BOOLEAN NOT NULL DEFAULT FALSE,
	internal_processes BOOLEAN NOT NULL DEFAULT FALSE,
	contracted_processes BOOLEAN NOT NULL DEFAULT FALSE,
	export_markets BOOLEAN NOT NULL DEFAULT FALSE,
	flag_cr1 BOOLEAN NOT NULL DEFAULT FALSE,
	flag_cr2 BOOLEAN NOT NULL DEFAULT FALSE,
	flag_cr3 BOOLEAN NOT NULL DEFAULT FALSE,
	flag_cr4 BOOLEAN NOT NULL DEFAULT FALSE,
	flag_cr5 BOOLEAN NOT NULL DEFAULT FALSE,
	flag_app_a BOOLEAN NOT NULL DEFAULT FALSE,
	flag_app_b BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS facility_attributes_tenant_idx ON facility_attributes (tenant_id);

CREATE TABLE IF NOT EXISTS assessments (
	id UUID PRIMARY KEY,
	tenant_id UUID NOT NULL,
	intake_id UUID NOT NULL,
	catalog_version TEXT NOT NULL,
	scope_state TEXT NOT NULL,
	scope JSONB,
	last_refreshed TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
	filtered_questions_count INT NOT NULL DEFAULT 0,
	applicable_rec_codes TEXT[] NOT NULL DEFAULT '{}',
	version BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS assessments_tenant_idx ON assessments (tenant_id);
`

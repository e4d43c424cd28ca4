package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orderapi/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  content_hash TEXT        NOT NULL,
  status       TEXT        NOT NULL DEFAULT 'pending'
               CHECK (status IN ('pending', 'extracted', 'failed')),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_content_hash",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_content_hash ON documents (content_hash);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  shipment_id TEXT        NOT NULL,
  payload     JSONB       NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_orders_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_document_id ON orders (document_id);`,
	},
	{
		Name: "create_index_orders_shipment_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_shipment_id ON orders (shipment_id);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL AND to_regclass('public.orders') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("db_host", dbHost).Msg("db_migration_check_failed")
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		logger.Info().
			Str("db_host", dbHost).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("db_migration_skip")
		return nil
	}

	logger.Info().Str("db_host", dbHost).Msg("db_migration_start")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error().
				Err(err).
				Str("migration_step", step.Name).
				Str("db_host", dbHost).
				Msg("db_migration_failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Info().
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("db_migration_step")
	}

	logger.Info().
		Str("db_host", dbHost).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("db_migration_success")

	return nil
}

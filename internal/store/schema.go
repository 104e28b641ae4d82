package store

import (
	"context"
	_ "embed"
	"fmt"

	"videocatalog/internal/config"
	"videocatalog/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when schema.sql
// changes; existing databases must then be reset.
const schemaVersion = 1

// dropStatements removes every table in dependency order.
var dropStatements = []string{
	"DROP TABLE IF EXISTS video_cast_members",
	"DROP TABLE IF EXISTS video_genres",
	"DROP TABLE IF EXISTS video_categories",
	"DROP TABLE IF EXISTS videos",
	"DROP TABLE IF EXISTS schema_version",
}

func (s *Store) tableExistsQuery() string {
	if s.driver == config.DriverPostgres {
		return "SELECT COUNT(1) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
	}
	return "SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name = ?"
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	if err := s.db.GetContext(ctx, &tableExists, s.tableExistsQuery(), "schema_version"); err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		s.logger.Info("creating schema", logging.Int("schema_version", schemaVersion))
		return s.recreate(ctx, false)
	}

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'catalog schema reset' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// SchemaVersion reads the version recorded in the database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.GetContext(ctx, &version, "SELECT version FROM schema_version LIMIT 1"); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Reset drops every table and recreates the schema from schema.sql. All
// stored videos are lost.
func (s *Store) Reset(ctx context.Context) error {
	ctx = ensureContext(ctx)
	s.logger.Warn("dropping and recreating schema", logging.Int("schema_version", schemaVersion))
	return s.withLock(ctx, false, func() error {
		return s.recreate(ctx, true)
	})
}

func (s *Store) recreate(ctx context.Context, drop bool) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if drop {
			for _, stmt := range dropStatements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("drop schema: %w", err)
				}
			}
		}

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_version (version) VALUES (?)"), schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit schema: %w", err)
		}
		return nil
	})
}

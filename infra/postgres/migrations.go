package postgres

import (
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// RunMigrations applies pending goose migrations from migrationsDir.
func (r *PgRepository) RunMigrations(migrationsDir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	zap.L().Info("Checking for pending migrations", zap.String("dir", migrationsDir))

	if err := goose.Up(r.db.DB, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.L().Info("Migrations completed successfully")
	return nil
}

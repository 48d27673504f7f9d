package database

import (
	"fmt"
	"strings"

	"blog-api/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase opens the database and applies pending migrations.
func InitializeDatabase(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: cfg.Driver,
		DB:     dataSource(cfg.Path),
	})

	if err := migrations.Migrate(dbConn, cfg.MigrationsDir); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("run migrations from %s: %w", cfg.MigrationsDir, err)
	}

	logger.Info("Database initialized successfully", zap.String("path", cfg.Path))
	return dbConn, nil
}

// dataSource turns on foreign keys for every pooled sqlite connection so
// that deleting a user cascades to its posts and tokens.
func dataSource(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

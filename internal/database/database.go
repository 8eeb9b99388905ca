package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"portside_pos_backend/internal/config"
	"portside_pos_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// collectionsDDL is the only table the collection store needs.
const collectionsDDL = `
CREATE TABLE IF NOT EXISTS collections (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var DB *sql.DB

// InitDB opens and pings the connection pool, then makes sure the
// collections table exists.
func InitDB(cfg config.DBConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"host": cfg.Host, "db": cfg.Name})

	if _, err := db.Exec(collectionsDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating collections table: %w", err)
	}
	if err := applySchema(db, cfg.SchemaPath); err != nil {
		db.Close()
		return nil, err
	}

	DB = db
	return db, nil
}

// applySchema runs an extra SQL script, e.g. grants or a collection import.
func applySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		utils.LogDebug("No schema path provided, skipping schema application")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err = db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied", map[string]interface{}{"path": schemaPath})
	return nil
}

// GetDB returns the database connection pool
func GetDB() *sql.DB {
	return DB
}

package db

import (
	"embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB holds the database connection pool shared by the query layer.
var DB *sqlx.DB

// InitDB connects to PostgreSQL, tunes the pool and brings the schema
// up to date with the embedded goose migrations.
func InitDB(dbURL string) error {
	var err error
	DB, err = sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		return err
	}

	if err = DB.Ping(); err != nil {
		log.Errorf("Failed to ping database: %v", err)
		DB.Close()
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(10)

	if err = runMigrations(); err != nil {
		DB.Close()
		return err
	}

	log.Info("Database connection pool initialized successfully.")
	return nil
}

func runMigrations() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(DB.DB)
	if err != nil {
		log.Warnf("Could not read current schema version: %v", err)
		currentVersion = 0
	}
	log.Infof("Current schema version: %d", currentVersion)

	if err := goose.Up(DB.DB, "migrations"); err != nil {
		log.Errorf("Failed to run migrations: %v", err)
		return err
	}

	newVersion, err := goose.GetDBVersion(DB.DB)
	if err != nil {
		return err
	}
	log.Infof("Schema migrated to version: %d", newVersion)
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		} else {
			log.Info("Database connection pool closed.")
		}
	}
}

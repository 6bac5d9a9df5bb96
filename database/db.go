package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/migrations"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "diet-daily.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else if p := os.Getenv("DATABASE_PATH"); p != "" {
		dbPath = p
	} else {
		// Local development
		dbPath = "./database.db"
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_busy_timeout=10000&_foreign_keys=on"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	if dbPath == ":memory:" {
		// Each pooled connection would get its own in-memory database
		DB.SetMaxOpenConns(1)
	} else {
		DB.SetMaxOpenConns(5)
		DB.SetMaxIdleConns(5)
	}
	DB.SetConnMaxLifetime(time.Minute * 5)

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return err
	}

	// Run migrations
	if err := migrations.RunMigrations(DB); err != nil {
		return err
	}

	return nil
}

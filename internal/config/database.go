package config

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create trips table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trips (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			created_by VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create trip_membership table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trip_membership (
			trip_id VARCHAR(36) NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(10) NOT NULL,
			budget_goal NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (trip_id, user_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create itinerary_events table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS itinerary_events (
			id VARCHAR(36) PRIMARY KEY,
			trip_id VARCHAR(36) NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			event_date TIMESTAMP NOT NULL,
			cost NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create expenses table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS expenses (
			id VARCHAR(36) PRIMARY KEY,
			trip_id VARCHAR(36) NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			event_id VARCHAR(36) REFERENCES itinerary_events(id) ON DELETE SET NULL,
			description VARCHAR(255) NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			paid_by VARCHAR(36) NOT NULL REFERENCES users(id),
			date_incurred TIMESTAMP NOT NULL,
			category VARCHAR(20) NOT NULL DEFAULT 'other',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create expense_splits table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS expense_splits (
			expense_id VARCHAR(36) NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			person_id VARCHAR(36) NOT NULL REFERENCES users(id),
			amount NUMERIC(12,2) NOT NULL,
			PRIMARY KEY (expense_id, person_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create settlements table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settlements (
			id VARCHAR(36) PRIMARY KEY,
			trip_id VARCHAR(36) NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			from_user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			to_user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			amount NUMERIC(12,2) NOT NULL,
			date_paid TIMESTAMP NOT NULL,
			status VARCHAR(10) NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_trip_membership_user_id ON trip_membership(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_itinerary_events_trip_id ON itinerary_events(trip_id)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_trip_id ON expenses(trip_id)",
		"CREATE INDEX IF NOT EXISTS idx_expense_splits_expense_id ON expense_splits(expense_id)",
		"CREATE INDEX IF NOT EXISTS idx_settlements_trip_id ON settlements(trip_id)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			slog.Warn("Failed to create index", "error", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}

package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist. The seq columns back the
// insertion-order guarantee for list reads.
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		seq BIGSERIAL
	);

	CREATE TABLE IF NOT EXISTS products (
		id VARCHAR PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price BIGINT NOT NULL, -- in paise (1 rupee = 100 paise)
		original_price BIGINT,
		category TEXT NOT NULL,
		brand TEXT,
		technical_specs TEXT,
		condition TEXT NOT NULL CHECK (condition IN ('new', 'like-new', 'good', 'fair', 'poor')),
		images TEXT[] NOT NULL DEFAULT '{}',
		seller_name TEXT NOT NULL,
		seller_phone TEXT NOT NULL,
		price_negotiable BOOLEAN NOT NULL DEFAULT FALSE,
		delivery_available BOOLEAN NOT NULL DEFAULT FALSE,
		is_sold BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	);

	CREATE TABLE IF NOT EXISTS requests (
		id VARCHAR PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		max_price BIGINT NOT NULL, -- in paise
		urgency TEXT NOT NULL CHECK (urgency IN ('low', 'medium', 'high')),
		requester_email TEXT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	);

	CREATE TABLE IF NOT EXISTS suggestions (
		id VARCHAR PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('new-feature', 'ui', 'security', 'mobile-app', 'search-filter', 'other')),
		priority TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
		description TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	);

	-- product_id is intentionally not a foreign key: a flag may reference an
	-- already-deleted product.
	CREATE TABLE IF NOT EXISTS flags (
		id VARCHAR PRIMARY KEY,
		product_id VARCHAR NOT NULL,
		reporter_name TEXT NOT NULL,
		reporter_email TEXT NOT NULL,
		reason TEXT NOT NULL CHECK (reason IN ('inappropriate', 'fake', 'spam', 'other')),
		description TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	);

	-- Indexes for the public listing and stats paths
	CREATE INDEX IF NOT EXISTS idx_products_is_sold ON products(is_sold);
	CREATE INDEX IF NOT EXISTS idx_requests_is_approved ON requests(is_approved);
	CREATE INDEX IF NOT EXISTS idx_flags_product_id ON flags(product_id);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Connect opens the postgres pool from environment configuration and
// verifies it with a ping before returning.
func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "mentorix")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Printf("[database] connected to %s:%s/%s", host, port, dbname)
	return db, nil
}

// Migrate applies the schema. Statements are idempotent so it is safe to
// run on every startup.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS generations (
			id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			status TEXT NOT NULL,
			topic TEXT NOT NULL DEFAULT '',
			request JSONB NOT NULL DEFAULT '{}',
			pattern_question_count INTEGER NOT NULL DEFAULT 0,
			custom_question_count INTEGER NOT NULL DEFAULT 0,
			total_question_count INTEGER NOT NULL DEFAULT 0,
			response_chars INTEGER NOT NULL DEFAULT 0,
			warnings TEXT NOT NULL DEFAULT '',
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS generation_documents (
			generation_id UUID NOT NULL REFERENCES generations(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			pdf BYTEA NOT NULL,
			pages INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (generation_id, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_user ON generations(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("[database] migrations applied")
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

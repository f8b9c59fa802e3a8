package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"tilemart-be/internal/config"

	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

// Postgres error codes the repositories care about.
const (
	PgUniqueViolation  = "23505"
	PgLockNotAvailable = "55P03"
)

func InitDB(cfg *config.Config) *sql.DB {
	// lock_timeout bounds every FOR UPDATE wait so a contended row surfaces
	// as a retryable error instead of blocking the request forever.
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable options='-c lock_timeout=3s'",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	log.Println("Database connection established")
	return db
}

// IsLockTimeout reports whether err is a lock_timeout expiry (55P03).
func IsLockTimeout(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgLockNotAvailable
}

// IsUniqueViolation reports whether err is a unique constraint violation (23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation
}

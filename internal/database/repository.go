package database

import "github.com/rs/zerolog"

// Repository provides access to the gateway's persisted state
type Repository struct {
	db     *DB
	logger zerolog.Logger
}

// NewRepository creates a new repository
func NewRepository(db *DB, logger zerolog.Logger) *Repository {
	return &Repository{db: db, logger: logger.With().Str("component", "repository").Logger()}
}

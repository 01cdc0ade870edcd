package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateLicense creates a new license
func (r *Repository) CreateLicense(ctx context.Context, license *License) error {
	query := `
		INSERT INTO licenses (license_key, expiration_date, max_users)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		license.LicenseKey,
		license.ExpirationDate,
		license.MaxUsers,
	).Scan(&license.ID)

	if err != nil {
		return fmt.Errorf("failed to create license: %w", err)
	}

	return nil
}

// GetLicenseByKey retrieves a license by its key string. Returns nil when
// no license matches.
func (r *Repository) GetLicenseByKey(ctx context.Context, key string) (*License, error) {
	query := `
		SELECT id, license_key, expiration_date, max_users
		FROM licenses
		WHERE license_key = $1
	`

	license := &License{}
	err := r.db.Pool.QueryRow(ctx, query, key).Scan(
		&license.ID, &license.LicenseKey, &license.ExpirationDate, &license.MaxUsers,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get license by key: %w", err)
	}

	return license, nil
}

// DeleteLicense deletes a license by id
func (r *Repository) DeleteLicense(ctx context.Context, id int) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM licenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete license: %w", err)
	}
	return nil
}

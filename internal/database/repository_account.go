package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrDeviceLimitReached is returned by AttachDevice when the account is at
// its device ceiling and the caller's address is not already registered.
var ErrDeviceLimitReached = errors.New("device limit reached")

// CreateAccount creates a new account. The store assigns the id and the
// created_date; both are written back into the struct.
func (r *Repository) CreateAccount(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO accounts (username, password, expiration_date, max_users)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_date
	`

	err := r.db.Pool.QueryRow(ctx, query,
		account.Username,
		account.Password,
		account.ExpirationDate,
		account.MaxUsers,
	).Scan(&account.ID, &account.CreatedDate)

	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByCredentials retrieves an account by exact username and
// password match. Returns nil when no account matches.
func (r *Repository) GetAccountByCredentials(ctx context.Context, username, password string) (*Account, error) {
	query := `
		SELECT id, username, password, created_date, expiration_date, max_users
		FROM accounts
		WHERE username = $1 AND password = $2
	`

	account := &Account{}
	err := r.db.Pool.QueryRow(ctx, query, username, password).Scan(
		&account.ID, &account.Username, &account.Password,
		&account.CreatedDate, &account.ExpirationDate, &account.MaxUsers,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by credentials: %w", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by id. Returns nil when absent.
func (r *Repository) GetAccountByID(ctx context.Context, id int) (*Account, error) {
	query := `
		SELECT id, username, password, created_date, expiration_date, max_users
		FROM accounts
		WHERE id = $1
	`

	account := &Account{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Username, &account.Password,
		&account.CreatedDate, &account.ExpirationDate, &account.MaxUsers,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// ListAccountSummaries retrieves every account with its device count.
func (r *Repository) ListAccountSummaries(ctx context.Context) ([]AccountSummary, error) {
	query := `
		SELECT a.id, a.username, a.expiration_date, COUNT(d.id)
		FROM accounts a
		LEFT JOIN devices d ON d.account_id = a.id
		GROUP BY a.id, a.username, a.expiration_date
		ORDER BY a.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var summaries []AccountSummary
	for rows.Next() {
		var s AccountSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.ExpirationDate, &s.DeviceCount); err != nil {
			return nil, fmt.Errorf("failed to scan account summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// DeleteAccount deletes an account. The devices foreign key cascades, so
// the account's device rows go with it.
func (r *Repository) DeleteAccount(ctx context.Context, id int) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// ListDevices retrieves the devices registered to an account, oldest first.
func (r *Repository) ListDevices(ctx context.Context, accountID int) ([]Device, error) {
	query := `
		SELECT id, COALESCE(ip_address, ''), last_login, account_id
		FROM devices
		WHERE account_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.ID, &d.IPAddress, &d.LastLogin, &d.AccountID); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

// AttachDevice registers the caller's address against the account if it is
// not already registered and the device ceiling allows it. The check and the
// insert run in one transaction holding a row lock on the account, so two
// concurrent logins from new addresses cannot both pass the limit check.
// Returns ErrDeviceLimitReached when the account is full and the address is
// new. A repeat login from a registered address is a no-op: the original
// last_login is deliberately left untouched.
func (r *Repository) AttachDevice(ctx context.Context, accountID int, ip string, now time.Time) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxUsers int
	err = tx.QueryRow(ctx,
		`SELECT max_users FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID,
	).Scan(&maxUsers)
	if err != nil {
		return fmt.Errorf("failed to lock account: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM devices WHERE account_id = $1 AND ip_address = $2)`,
		accountID, ip,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check device: %w", err)
	}

	if exists {
		return tx.Commit(ctx)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM devices WHERE account_id = $1`,
		accountID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count devices: %w", err)
	}

	if count >= maxUsers {
		return ErrDeviceLimitReached
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO devices (ip_address, last_login, account_id) VALUES ($1, $2, $3)`,
		ip, now, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert device: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit device attach: %w", err)
	}

	r.logger.Info().Int("account_id", accountID).Str("ip", ip).Msg("device attached")
	return nil
}

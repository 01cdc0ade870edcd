package api

import (
	"context"
	"time"

	"license-gateway/internal/database"
)

// AccountStore is the persistence surface the account and login handlers
// need. *database.Repository satisfies it.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *database.Account) error
	GetAccountByCredentials(ctx context.Context, username, password string) (*database.Account, error)
	GetAccountByID(ctx context.Context, id int) (*database.Account, error)
	ListAccountSummaries(ctx context.Context) ([]database.AccountSummary, error)
	DeleteAccount(ctx context.Context, id int) error
	ListDevices(ctx context.Context, accountID int) ([]database.Device, error)
	AttachDevice(ctx context.Context, accountID int, ip string, now time.Time) error
}

// LicenseStore is the persistence surface the license handlers need.
type LicenseStore interface {
	CreateLicense(ctx context.Context, license *database.License) error
	GetLicenseByKey(ctx context.Context, key string) (*database.License, error)
	DeleteLicense(ctx context.Context, id int) error
}

// Store combines the two persistence surfaces.
type Store interface {
	AccountStore
	LicenseStore
}

// HealthChecker reports backing-store reachability for /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

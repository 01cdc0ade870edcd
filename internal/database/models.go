package database

import (
	"fmt"
	"time"
)

// expirationDateLayout is the only accepted input format for expiration
// dates. Anything else, including calendrically impossible values, is
// rejected.
const expirationDateLayout = "2006-01-02"

// Account is a login principal with credentials, an expiration date, and a
// device-count ceiling. Passwords are stored in plaintext; hashing is out of
// scope for the gateway.
type Account struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"password"`
	CreatedDate    time.Time `json:"created_date"`
	ExpirationDate time.Time `json:"expiration_date"`
	MaxUsers       int       `json:"max_users"`
}

// IsExpired reports whether now is strictly later than the account's
// expiration date.
func (a *Account) IsExpired(now time.Time) bool {
	return now.After(a.ExpirationDate)
}

// Device is one client IP bound to an account. The row is written once at
// first login from that address; last_login is not refreshed on repeat
// logins.
type Device struct {
	ID        int       `json:"id"`
	IPAddress string    `json:"ip_address"`
	LastLogin time.Time `json:"last_login"`
	AccountID int       `json:"account_id"`
}

// License is a standalone key/expiration/user-count record, unrelated to
// accounts and devices.
type License struct {
	ID             int       `json:"id"`
	LicenseKey     string    `json:"license_key"`
	ExpirationDate time.Time `json:"expiration_date"`
	MaxUsers       int       `json:"max_users"`
}

// AccountSummary is the admin listing view of an account.
type AccountSummary struct {
	ID             int       `json:"-"`
	Username       string    `json:"username"`
	ExpirationDate time.Time `json:"expiration_date"`
	DeviceCount    int       `json:"devices"`
}

// ParseExpirationDate parses a YYYY-MM-DD calendar date into the midnight
// UTC instant. It is strict: no other layouts are accepted, and a date that
// does not exist on the calendar fails.
func ParseExpirationDate(text string) (time.Time, error) {
	ts, err := time.ParseInLocation(expirationDateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiration date %q: %w", text, err)
	}
	return ts, nil
}

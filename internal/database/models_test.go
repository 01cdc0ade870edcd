package database

import (
	"testing"
	"time"
)

func TestParseExpirationDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"valid date", "2099-01-01", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"leap day", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"non-leap feb 29", "2023-02-29", time.Time{}, true},
		{"month out of range", "2024-13-01", time.Time{}, true},
		{"day out of range", "2024-04-31", time.Time{}, true},
		{"wrong separator", "2024/01/01", time.Time{}, true},
		{"short year", "24-01-01", time.Time{}, true},
		{"trailing garbage", "2024-01-01T00:00:00", time.Time{}, true},
		{"not a date", "not-a-date", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpirationDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseExpirationDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExpirationDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseExpirationDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAccountIsExpired(t *testing.T) {
	expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	account := &Account{ExpirationDate: expiry}

	if account.IsExpired(expiry.Add(-time.Second)) {
		t.Error("account should not be expired before the expiration instant")
	}
	if account.IsExpired(expiry) {
		t.Error("account should not be expired exactly at the expiration instant")
	}
	if !account.IsExpired(expiry.Add(time.Second)) {
		t.Error("account should be expired after the expiration instant")
	}
}

package auth

import "testing"

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name       string
		provided   string
		configured string
		want       bool
	}{
		{"exact match", "s3cret", "s3cret", true},
		{"case mismatch", "S3cret", "s3cret", false},
		{"empty provided", "", "s3cret", false},
		{"empty configured", "s3cret", "", false},
		{"both empty", "", "", true},
		{"whitespace differs", "s3cret ", "s3cret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateKey(tt.provided, tt.configured); got != tt.want {
				t.Errorf("ValidateKey(%q, %q) = %v, want %v", tt.provided, tt.configured, got, tt.want)
			}
		})
	}
}

func TestKeysForRole(t *testing.T) {
	keys := Keys{Admin: "admin-key", Client: "client-key"}

	if got := keys.ForRole(RoleAdmin); got != "admin-key" {
		t.Errorf("ForRole(RoleAdmin) = %q, want %q", got, "admin-key")
	}
	if got := keys.ForRole(RoleClient); got != "client-key" {
		t.Errorf("ForRole(RoleClient) = %q, want %q", got, "client-key")
	}
}

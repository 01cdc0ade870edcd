package auth

// Role identifies which shared secret a request must present.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// ValidateKey reports whether the caller-supplied key matches the configured
// secret. The comparison is exact and case-sensitive; the gateway contract is
// plain shared-secret equality with no hashing or timing mitigation.
func ValidateKey(provided, configured string) bool {
	return provided == configured
}

// Keys holds the two configured gateway secrets.
type Keys struct {
	Admin  string
	Client string
}

// ForRole returns the configured secret for the given role.
func (k Keys) ForRole(role Role) string {
	if role == RoleAdmin {
		return k.Admin
	}
	return k.Client
}

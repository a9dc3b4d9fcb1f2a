package auth

import "errors"

// Roles carried by a credential claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrInvalidCredential is returned for any token that cannot be trusted:
// malformed, expired, mis-signed, or carrying an unknown role.
var ErrInvalidCredential = errors.New("invalid credential")

// Claims is the decoded identity payload carried by a signed credential.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the claim carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Verifier validates a bearer token string and extracts its identity claim.
// Both implementations must trust the same secret material and agree on the
// claim shape; they differ only in the runtime they are built for.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

func validRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

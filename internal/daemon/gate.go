package daemon

import "crypto/subtle"

// Gate implements the admin panel password check. A successful check only
// flips an authenticated flag on the editing page; it issues no token and
// grants nothing server-side. Set paths.api_token for real endpoint
// protection.
type Gate struct {
	secret string
}

// NewGate builds a gate around the configured admin password.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Authenticate reports whether the candidate matches the admin password.
func (g *Gate) Authenticate(candidate string) bool {
	if g == nil || g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(candidate)) == 1
}

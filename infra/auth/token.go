package auth

import (
	"context"
	"strings"
)

// TokenProvider supplies an access token for API authentication. An empty
// token with a nil error means the user is browsing anonymously.
type TokenProvider interface {
	AccessToken() (string, error)
}

// Refresher renews an expired access token.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StaticToken is a TokenProvider for a fixed token, used by scripts and tests.
type StaticToken string

// AccessToken returns the token trimmed of whitespace.
func (s StaticToken) AccessToken() (string, error) {
	return strings.TrimSpace(string(s)), nil
}

package ports

import "context"

// TokenSource resolves the auth token for the run. Sources that have no
// token to offer return domain.ErrTokenNotFound so a chain can fall
// through to the next one.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

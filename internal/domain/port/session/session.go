package session

import "context"

// Store resolves an opaque session token into the authenticated user ID
type Store interface {
	// UserID returns ErrUnauthenticated when the token is unknown or expired
	UserID(ctx context.Context, token string) (uint64, error)
}

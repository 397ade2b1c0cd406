package interfaces

import (
	"context"
	"time"
)

// RevocationStore remembers session token ids that were ended before their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}

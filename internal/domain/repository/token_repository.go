package repository

import (
	"context"
	"time"
)

// TokenRepository is the allowlist of issued tokens. A signed token is only
// honoured while its id is present here.
type TokenRepository interface {
	Store(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

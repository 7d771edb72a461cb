package usecase

import (
	"context"
	"time"
)

// PageCache is the shared JSON cache in front of Postgres reads.
type PageCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// LocalCache is an in-process lookup cache.
type LocalCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

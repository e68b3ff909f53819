package domain

import (
	"context"
	"time"
)

// Deduplicator гарантирует однократную обработку ключа в течение ttl.
type Deduplicator interface {
	// Claim возвращает true, если ключ захвачен впервые.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

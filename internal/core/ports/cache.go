package ports

import (
	"context"
	"time"
)

// ResponseCache stores translated upstream results. A miss returns
// (nil, false, nil).
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

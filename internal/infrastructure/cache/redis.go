package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Options selects the Redis holding the authority set and idempotency keys.
type Options struct {
	Addr string
	DB   int
	// DialTimeout also bounds the startup ping. Zero means five seconds.
	DialTimeout time.Duration
}

// OpenRedis returns a client that has answered a ping. A client that never
// did is closed before returning.
func OpenRedis(ctx context.Context, o Options) (*redis.Client, error) {
	timeout := o.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	rdb := redis.NewClient(&redis.Options{Addr: o.Addr, DB: o.DB, DialTimeout: timeout})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s db %d: %w", o.Addr, o.DB, err)
	}
	return rdb, nil
}

// Ping is a health check over rdb.
func Ping(rdb redis.Cmdable) func(ctx context.Context) error {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}

package authority

import (
	"context"
	"fmt"

	"microfinance-ledger/internal/domain/authority"

	"github.com/redis/go-redis/v9"
)

// VerifiedSetKey holds the verified-authority principals.
const VerifiedSetKey = "authority:verified"

var _ authority.Registry = (*RedisOracle)(nil)

// RedisOracle answers membership from a Redis set, so the registry is
// shared by every API instance.
type RedisOracle struct {
	rdb *redis.Client
	key string
}

func NewRedisOracle(rdb *redis.Client) *RedisOracle {
	return &RedisOracle{rdb: rdb, key: VerifiedSetKey}
}

func (o *RedisOracle) IsVerifiedAuthority(ctx context.Context, principal string) (bool, error) {
	ok, err := o.rdb.SIsMember(ctx, o.key, principal).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember: %w", err)
	}
	return ok, nil
}

func (o *RedisOracle) Add(ctx context.Context, principals ...string) error {
	if len(principals) == 0 {
		return nil
	}
	members := make([]any, len(principals))
	for i, p := range principals {
		members[i] = p
	}
	return o.rdb.SAdd(ctx, o.key, members...).Err()
}

func (o *RedisOracle) Remove(ctx context.Context, principal string) error {
	return o.rdb.SRem(ctx, o.key, principal).Err()
}

func (o *RedisOracle) List(ctx context.Context) ([]string, error) {
	return o.rdb.SMembers(ctx, o.key).Result()
}

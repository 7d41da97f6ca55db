package redis

import (
	"context"
	"errors"
	"fmt"
	"smelterAdvisor/business/advisor"
	"time"

	"github.com/redis/go-redis/v9"
)

// advanceScript increments the counter up to ARGV[1], refreshes the TTL (ARGV[2] seconds, 0 keeps
// the key forever) and returns the value before the increment.
var advanceScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local ceiling = tonumber(ARGV[1])
local nxt = cur
if cur < ceiling then
	nxt = cur + 1
end
local ttl = tonumber(ARGV[2])
if ttl > 0 then
	redis.call('SET', KEYS[1], nxt, 'EX', ttl)
else
	redis.call('SET', KEYS[1], nxt)
end
return cur
`)

// StateRepository shares adjustment counters between replicas.
type StateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ advisor.StateRepository = (*StateRepository)(nil)

func NewStateRepository(client *redis.Client, ttl time.Duration) *StateRepository {
	return &StateRepository{
		client: client,
		ttl:    ttl,
	}
}

func stateKey(session string) string {
	// key format: "advisor:state:{session}"
	return fmt.Sprintf("advisor:state:%s", session)
}

func (r *StateRepository) Current(ctx context.Context, session string) (int, error) {
	n, err := r.client.Get(ctx, stateKey(session)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get adjustment state from Redis: %w", err)
	}

	return n, nil
}

func (r *StateRepository) Advance(ctx context.Context, session string, ceiling int) (int, error) {
	prev, err := advanceScript.Run(ctx, r.client, []string{stateKey(session)}, ceiling, int(r.ttl/time.Second)).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to advance adjustment state in Redis: %w", err)
	}

	return prev, nil
}

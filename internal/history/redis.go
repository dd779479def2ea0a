package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ledgerKey = "notifications:sent"

	// Cap is the maximum number of entries kept in the ledger.
	Cap = 1000
)

// RedisRepository keeps the recent-history ledger as a redis list: newest
// entries are pushed to the head and the tail is trimmed to the cap.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{
		rdb: rdb,
	}
}

func (r *RedisRepository) Append(ctx context.Context, message []byte) error {
	if err := r.rdb.LPush(ctx, ledgerKey, message).Err(); err != nil {
		return fmt.Errorf("failed to append to history: %w", err)
	}

	if err := r.rdb.LTrim(ctx, ledgerKey, 0, Cap-1).Err(); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return nil
}

func (r *RedisRepository) Recent(ctx context.Context, limit int) ([]json.RawMessage, error) {
	entries, err := r.rdb.LRange(ctx, ledgerKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	messages := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, json.RawMessage(entry))
	}

	return messages, nil
}

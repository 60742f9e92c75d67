package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Key layout:
//
//	kv : bj:session:{playerID} -> JSON-encoded Record
//	set: bj:active             -> player ids with an in-progress game
const activeSetKey = "bj:active"

// RedisRepository implements the Repository interface using Redis
type RedisRepository struct {
	rdb *redis.Client
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(addr, password string, db int) (*RedisRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisRepository{rdb: rdb}, nil
}

func sessionKey(playerID int64) string {
	return fmt.Sprintf("bj:session:%d", playerID)
}

// Get returns the record for a player, or nil when none exists
func (r *RedisRepository) Get(ctx context.Context, playerID int64) (*Record, error) {
	data, err := r.rdb.Get(ctx, sessionKey(playerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("error decoding session record: %w", err)
	}
	return &record, nil
}

// Upsert inserts or replaces the record keyed by its player id. The
// active set is kept in step so CountActive stays a single SCARD.
func (r *RedisRepository) Upsert(ctx context.Context, record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	p := r.rdb.Pipeline()
	p.Set(ctx, sessionKey(record.PlayerID), data, 0)
	if record.Status == nil {
		p.SAdd(ctx, activeSetKey, record.PlayerID)
	} else {
		p.SRem(ctx, activeSetKey, record.PlayerID)
	}
	_, err = p.Exec(ctx)
	return err
}

// Delete removes the record for a player
func (r *RedisRepository) Delete(ctx context.Context, playerID int64) error {
	p := r.rdb.Pipeline()
	p.Del(ctx, sessionKey(playerID))
	p.SRem(ctx, activeSetKey, playerID)
	_, err := p.Exec(ctx)
	return err
}

// CountActive returns the number of in-progress sessions
func (r *RedisRepository) CountActive(ctx context.Context) (int64, error) {
	return r.rdb.SCard(ctx, activeSetKey).Result()
}

// Close closes the Redis client
func (r *RedisRepository) Close() error {
	return r.rdb.Close()
}

package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"storefront-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const sessionKey = "storefront:session"

// RedisStore keeps the session in a Redis hash with the fields `token`,
// `username` and `balance`, so the session survives restarts of the client.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Get reads the stored session; an empty hash means logged out
func (s *RedisStore) Get(ctx context.Context) (models.Session, error) {
	fields, err := s.rdb.HGetAll(ctx, sessionKey).Result()
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	if len(fields) == 0 {
		return models.Session{}, nil
	}

	balance, err := strconv.ParseFloat(fields["balance"], 64)
	if err != nil {
		return models.Session{}, fmt.Errorf("corrupt session balance %q: %w", fields["balance"], err)
	}

	return models.Session{
		Token:    fields["token"],
		Username: fields["username"],
		Balance:  balance,
	}, nil
}

// Save replaces the stored session wholesale
func (s *RedisStore) Save(ctx context.Context, sess models.Session) error {
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, sessionKey, "token", sess.Token)
	pipe.HSet(ctx, sessionKey, "username", sess.Username)
	pipe.HSet(ctx, sessionKey, "balance", strconv.FormatFloat(sess.Balance, 'f', -1, 64))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the stored session
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

package session

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/agentcrew/core"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "agentcrew:thread:"

// RedisStore persists threads as JSON values under agentcrew:thread:<id>.
type RedisStore struct {
	client *redis.Client
}

// RedisStoreOptions configure a RedisStore connection.
type RedisStoreOptions struct {
	Password string
	DB       int
}

// NewRedisStore connects to addr and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr string, optFns ...func(o *RedisStoreOptions)) (*RedisStore, error) {
	opts := RedisStoreOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close releases the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Save implements core.ThreadStore.
func (s *RedisStore) Save(ctx context.Context, t *core.Thread) error {
	data, err := encodeThread(t)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+t.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("save thread %s: %w", t.ID, err)
	}
	return nil
}

// Load implements core.ThreadStore.
func (s *RedisStore) Load(ctx context.Context, id string) (*core.Thread, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load thread %s: %w", id, err)
	}
	return decodeThread(data)
}

// List implements core.ThreadStore. Keys are scanned, loaded and sorted
// newest first.
func (s *RedisStore) List(ctx context.Context, limit int) ([]core.ThreadInfo, error) {
	var infos []core.ThreadInfo
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		id := strings.TrimPrefix(iter.Val(), redisKeyPrefix)
		t, err := s.Load(ctx, id)
		if err != nil {
			continue
		}
		infos = append(infos, threadInfo(t))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

// Delete implements core.ThreadStore. Deleting a missing thread is a no-op.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete thread %s: %w", id, err)
	}
	return nil
}

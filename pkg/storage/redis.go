package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisIndexKey = "__paths__"

// RedisStorage implements Storage on top of Redis strings. Each path is one
// key under prefix; a set under the same prefix indexes the paths for List.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a RedisStorage. prefix namespaces every key.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(path string) string {
	return s.prefix + strings.TrimPrefix(path, "/")
}

func (s *RedisStorage) indexKey() string {
	return s.prefix + redisIndexKey
}

func (s *RedisStorage) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (s *RedisStorage) Write(ctx context.Context, path string, data []byte) error {
	clean := strings.TrimPrefix(path, "/")
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(clean), data, 0)
		pipe.SAdd(ctx, s.indexKey(), clean)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, path string) error {
	clean := strings.TrimPrefix(path, "/")
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.key(clean))
		pipe.SRem(ctx, s.indexKey(), clean)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return nil
}

func (s *RedisStorage) List(ctx context.Context, prefix string) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	dir := strings.Trim(prefix, "/")
	if dir != "" {
		dir += "/"
	}
	var paths []string
	for _, m := range members {
		rest, ok := strings.CutPrefix(m, dir)
		if !ok || rest == "" || strings.Contains(rest, "/") {
			continue
		}
		paths = append(paths, m)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *RedisStorage) Exists(ctx context.Context, path string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(path)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return n > 0, nil
}

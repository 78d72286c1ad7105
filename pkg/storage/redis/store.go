// Package redis provides a Redis-backed storage.Store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-formstep/pkg/storage"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "formstep"

// Options configures the client and key layout.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// TTL expires abandoned records. Zero keeps them until deleted.
	TTL time.Duration
}

// Store persists records as plain Redis strings.
type Store struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	owned  bool
}

var _ storage.Store = (*Store)(nil)

// Open dials Redis and verifies connectivity with a ping.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redis: address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}

	store := New(client, opts.Prefix, opts.TTL)
	store.owned = true
	return store, nil
}

// New wraps an existing client. The caller keeps ownership of the client.
func New(client *goredis.Client, prefix string, ttl time.Duration) *Store {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

// Key returns the namespaced Redis key for key.
func (s *Store) Key(key string) string {
	var sb strings.Builder
	sb.WriteString(s.prefix)
	sb.WriteString(":")
	sb.WriteString(key)
	return sb.String()
}

func (s *Store) ready(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.client == nil {
		return errors.New("redis: client not initialised")
	}
	if strings.TrimSpace(key) == "" {
		return storage.ErrEmptyKey
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := s.ready(ctx, key); err != nil {
		return nil, err
	}
	value, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.ready(ctx, key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ready(ctx, key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.Key(key)).Err(); err != nil {
		return fmt.Errorf("redis: del %q: %w", key, err)
	}
	return nil
}

// Close releases the client when the store created it.
func (s *Store) Close() error {
	if s == nil || s.client == nil || !s.owned {
		return nil
	}
	return s.client.Close()
}

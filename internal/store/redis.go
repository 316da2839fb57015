package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"blinds-storefront/internal/domain"
)

// DefaultCartTTL is how long an untouched cart survives in Redis.
const DefaultCartTTL = 24 * time.Hour

// RedisOption configures the client built by NewRedisClient.
type RedisOption func(*redis.Options)

func WithRedisPassword(password string) RedisOption {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithRedisDB(db int) RedisOption {
	return func(o *redis.Options) {
		o.DB = db
	}
}

// NewRedisClient creates a go-redis client for address.
func NewRedisClient(address string, options ...RedisOption) *redis.Client {
	opts := &redis.Options{Addr: address}
	for _, option := range options {
		option(opts)
	}
	return redis.NewClient(opts)
}

// RedisCartStore keeps each cart as one JSON value under "<prefix>:<id>".
// Every save refreshes the TTL.
type RedisCartStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCartStore creates a RedisCartStore. A non-positive ttl uses DefaultCartTTL.
func NewRedisCartStore(client *redis.Client, prefix string, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	if prefix == "" {
		prefix = "cart"
	}
	return &RedisCartStore{client: client, prefix: prefix, ttl: ttl}
}

var _ CartStorer = (*RedisCartStore)(nil)

func (r *RedisCartStore) key(id string) string {
	var builder strings.Builder
	builder.Grow(len(r.prefix) + 1 + len(id))
	builder.WriteString(r.prefix)
	builder.WriteString(":")
	builder.WriteString(id)
	return builder.String()
}

func (r *RedisCartStore) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("store: GetCart failed to read cart %s: %w", id, err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("store: GetCart failed to decode cart %s: %w", id, err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}

func (r *RedisCartStore) SaveCart(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("store: SaveCart failed to encode cart %s: %w", cart.ID, err)
	}
	if err := r.client.Set(ctx, r.key(cart.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store: SaveCart failed to write cart %s: %w", cart.ID, err)
	}
	return nil
}

func (r *RedisCartStore) DeleteCart(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("store: DeleteCart failed to delete cart %s: %w", id, err)
	}
	if n == 0 {
		return ErrCartNotFound
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisCartStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCartStore) Close() error {
	return r.client.Close()
}

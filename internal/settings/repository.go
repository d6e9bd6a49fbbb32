package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/mbourmaud/cabinet/internal/branding"
)

// DefaultRedisKey is the hash holding the branding colors.
const DefaultRedisKey = "cabinet:settings:branding"

// ErrNotFound is returned when no branding settings were ever saved.
var ErrNotFound = errors.New("branding settings not found")

// Repository persists branding colors.
type Repository interface {
	Load(ctx context.Context) (branding.Colors, error)
	Save(ctx context.Context, colors branding.Colors) error
}

// MemoryRepository keeps the colors in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	colors *branding.Colors
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(ctx context.Context) (branding.Colors, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.colors == nil {
		return branding.Colors{}, ErrNotFound
	}
	return *r.colors, nil
}

func (r *MemoryRepository) Save(ctx context.Context, colors branding.Colors) error {
	if err := colors.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors = &colors
	return nil
}

// RedisRepository stores the colors as fields of one Redis hash.
type RedisRepository struct {
	client redis.Cmdable
	key    string
}

// NewRedisRepository creates a repository on client. An empty key selects
// DefaultRedisKey.
func NewRedisRepository(client redis.Cmdable, key string) *RedisRepository {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRepository{client: client, key: key}
}

// Key returns the hash key.
func (r *RedisRepository) Key() string {
	return r.key
}

func (r *RedisRepository) Load(ctx context.Context) (branding.Colors, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return branding.Colors{}, fmt.Errorf("failed to read %s: %w", r.key, err)
	}
	if len(fields) == 0 {
		return branding.Colors{}, ErrNotFound
	}
	return branding.Colors{
		Primary: fields[string(branding.KeyPrimary)],
		Text:    fields[string(branding.KeyText)],
	}, nil
}

func (r *RedisRepository) Save(ctx context.Context, colors branding.Colors) error {
	if err := colors.Validate(); err != nil {
		return err
	}
	err := r.client.HSet(ctx, r.key,
		string(branding.KeyPrimary), colors.Primary,
		string(branding.KeyText), colors.Text,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", r.key, err)
	}
	return nil
}

// Fetcher adapts a repository to branding.Fetcher. Settings that were never
// saved read as empty colors, which the store fills with defaults.
func Fetcher(repo Repository) branding.Fetcher {
	return branding.FetcherFunc(func(ctx context.Context) (branding.Colors, error) {
		colors, err := repo.Load(ctx)
		if errors.Is(err, ErrNotFound) {
			return branding.Colors{}, nil
		}
		return colors, err
	})
}

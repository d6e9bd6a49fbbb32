package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mbourmaud/cabinet/internal/branding"
	"github.com/mbourmaud/cabinet/internal/config"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/settings"
)

// backend is the settings source selected by the configuration, plus a
// release hook for any connection it holds.
type backend struct {
	repo  settings.Repository
	kind  string
	close func() error
}

// openBackend picks the settings source: Redis when enabled, otherwise the
// REST API when a base URL is set, otherwise an in-memory repository.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch {
	case cfg.Redis.Enabled:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}

		return &backend{
			repo:  settings.NewRedisRepository(client, cfg.Redis.Key),
			kind:  "redis " + cfg.Redis.Addr,
			close: client.Close,
		}, nil

	case cfg.Settings.BaseURL != "":
		client := settings.NewClient(cfg.Settings.BaseURL, cfg.Settings.Timeout)
		return &backend{
			repo:  client,
			kind:  "api " + client.BaseURL(),
			close: func() error { return nil },
		}, nil

	default:
		logger.Warn("no settings source configured, colors are kept in memory")
		return &backend{
			repo:  settings.NewMemoryRepository(),
			kind:  "memory",
			close: func() error { return nil },
		}, nil
	}
}

// newStore builds the shared color store over repo with the configured cache
// duration and fallback colors.
func newStore(cfg *config.Config, repo settings.Repository) (*branding.Store, error) {
	store := branding.NewStore(settings.Fetcher(repo), logger.Default())
	store.SetTTL(cfg.Branding.CacheTTL)
	if err := store.SetDefaults(cfg.Branding.Defaults); err != nil {
		return nil, fmt.Errorf("invalid branding defaults: %w", err)
	}
	return store, nil
}

// modeLabel names the theme mode selected by --dark.
func modeLabel(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

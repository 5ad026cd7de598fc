package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/dag2langgraph"
	"github.com/aretw0/dag2langgraph/internal/config"
	"github.com/aretw0/dag2langgraph/pkg/adapters/memory"
	"github.com/aretw0/dag2langgraph/pkg/adapters/redis"
	"github.com/aretw0/dag2langgraph/pkg/observability"
	"github.com/aretw0/dag2langgraph/pkg/ports"
)

// NewResultCache builds the cache selected by cfg. The returned close
// function is never nil. A nil cache means caching is disabled.
func NewResultCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ports.ResultCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.CacheNone, "":
		return nil, noop, nil
	case config.CacheMemory:
		logger.Debug("Using in-memory result cache", "ttl", cfg.TTL, "max_entries", cfg.MaxEntries)
		return memory.NewCache(memory.WithTTL(cfg.TTL), memory.WithMaxEntries(cfg.MaxEntries)), noop, nil
	case config.CacheRedis:
		opts := []redis.Option{redis.WithTTL(cfg.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, noop, fmt.Errorf("redis cache unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using redis result cache", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB, "ttl", cfg.TTL)
		return cache, cache.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// NewConverter initializes the conversion service with standard CLI
// conventions. Metrics are registered on reg when it is not nil.
func NewConverter(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*dag2langgraph.Converter, func() error, error) {
	cache, closeCache, err := NewResultCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []dag2langgraph.Option{dag2langgraph.WithLogger(logger)}
	if cache != nil {
		opts = append(opts, dag2langgraph.WithCache(cache))
	}
	if reg != nil {
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			closeCache()
			return nil, nil, err
		}
		opts = append(opts, dag2langgraph.WithHooks(metrics.Hooks()))
	}

	return dag2langgraph.New(opts...), closeCache, nil
}

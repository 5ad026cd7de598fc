// Package config loads the command line tool's settings.
//
// Sources are applied in increasing priority: built-in defaults, an optional
// YAML file, DAG2LG_* environment variables and explicit overrides (flags).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds every tunable of the CLI and its servers.
type Config struct {
	LogLevel  string      `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string      `mapstructure:"log_format" validate:"oneof=text json"`
	Indent    int         `mapstructure:"indent" validate:"gte=0,lte=8"`
	HTTP      HTTPConfig  `mapstructure:"http"`
	Cache     CacheConfig `mapstructure:"cache"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// CacheConfig selects where converted results are memoized.
type CacheConfig struct {
	Backend    string        `mapstructure:"backend" validate:"oneof=none memory redis"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gte=0"`
	MaxEntries int           `mapstructure:"max_entries" validate:"gt=0"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

// RedisConfig is only consulted when Backend is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Indent:    2,
		HTTP: HTTPConfig{
			Addr:            ":8080",
			MaxBodyBytes:    4 << 20,
			ShutdownTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Backend:    CacheNone,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "dag2langgraph:result:",
			},
		},
	}
}

// envKeys maps environment variables to dotted config keys.
var envKeys = map[string]string{
	"DAG2LG_LOG_LEVEL":      "log_level",
	"DAG2LG_LOG_FORMAT":     "log_format",
	"DAG2LG_INDENT":         "indent",
	"DAG2LG_HTTP_ADDR":      "http.addr",
	"DAG2LG_CACHE_BACKEND":  "cache.backend",
	"DAG2LG_CACHE_TTL":      "cache.ttl",
	"DAG2LG_CACHE_MAX":      "cache.max_entries",
	"DAG2LG_REDIS_ADDR":     "cache.redis.addr",
	"DAG2LG_REDIS_PASSWORD": "cache.redis.password",
	"DAG2LG_REDIS_DB":       "cache.redis.db",
}

// Loader assembles a Config from its sources.
type Loader struct {
	// Path of an optional YAML file. Empty means no file.
	Path string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Overrides are dotted keys (e.g. "http.addr") set by flags.
	Overrides map[string]any
}

// Load reads, merges, decodes and validates the configuration.
func (l Loader) Load() (*Config, error) {
	settings := map[string]any{}

	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", l.Path, err)
		}
		if settings == nil {
			settings = map[string]any{}
		}
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for env, key := range envKeys {
		if v, ok := lookup(env); ok {
			if err := setPath(settings, key, v); err != nil {
				return nil, err
			}
		}
	}
	for key, v := range l.Overrides {
		if err := setPath(settings, key, v); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate normalizes the log level and checks field constraints.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.Redis.Addr == "" {
		return errors.New("invalid config: cache.redis.addr is required for the redis backend")
	}
	return nil
}

// setPath stores v under a dotted key, creating intermediate maps.
func setPath(m map[string]any, dotted string, v any) error {
	parts := strings.Split(dotted, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p]
		if !ok {
			child := map[string]any{}
			m[p] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("config key %q is not a section", p)
		}
		m = child
	}
	m[parts[len(parts)-1]] = v
	return nil
}

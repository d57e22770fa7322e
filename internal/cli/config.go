package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netsketch/pkg/cache"
	"github.com/matzehuels/netsketch/pkg/store"
)

// Config holds user settings loaded from the config file. Every field has a
// working default, so a missing file is not an error.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects and configures the parse result cache.
type CacheConfig struct {
	Backend string      `toml:"backend"` // "file" (default), "redis", or "none"
	Dir     string      `toml:"dir"`     // file backend directory; empty means the user cache dir
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds redis connection settings for the cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the named graph store.
type StoreConfig struct {
	Backend string      `toml:"backend"` // "file" (default) or "mongo"
	Dir     string      `toml:"dir"`     // file backend directory
	Mongo   MongoConfig `toml:"mongo"`
}

// MongoConfig holds mongo connection settings for the store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"` // listen address, default ":8421"
}

// RenderConfig sets render defaults.
type RenderConfig struct {
	Format string `toml:"format"` // default output format: "svg", "png", or "dot"
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8421"},
		Render: RenderConfig{Format: "svg"},
	}
}

// configPath returns the location of the user config file,
// ~/.config/netsketch/config.toml on most systems.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "netsketch", "config.toml"), nil
}

// loadConfig reads the user config file, falling back to defaults when the
// file does not exist. A file that exists but fails to parse is an error so
// that typos do not silently revert settings.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// openCache builds the cache backend selected by cfg.
// Unknown backends are an error rather than a silent fallback.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		return cache.NewFileCache(cfg.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", cfg.Backend)
	}
}

// openStore builds the graph store backend selected by cfg.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'file' or 'mongo')", cfg.Backend)
	}
}

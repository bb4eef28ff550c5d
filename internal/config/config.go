// Package config loads planner settings from an optional YAML file, a .env
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"

	DefaultStorageKey = "school-planner"
	DefaultLogMode    = "quiet"
	DefaultAddr       = ":8080"
	DefaultRedisAddr  = "localhost:6379"
)

// Config holds all planner settings
type Config struct {
	Storage    string      `yaml:"storage"`
	DBPath     string      `yaml:"db_path"`
	StorageKey string      `yaml:"storage_key"`
	Redis      RedisConfig `yaml:"redis"`
	LogMode    string      `yaml:"log_mode"`
	Addr       string      `yaml:"addr"`
}

// RedisConfig holds the Redis backend connection
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Storage:    StorageSQLite,
		DBPath:     DefaultDBPath(),
		StorageKey: DefaultStorageKey,
		Redis:      RedisConfig{Addr: DefaultRedisAddr},
		LogMode:    DefaultLogMode,
		Addr:       DefaultAddr,
	}
}

// DefaultDBPath is ~/.planner/planner.db, or a relative path when home is unknown
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".planner", "planner.db")
	}
	return filepath.Join(home, ".planner", "planner.db")
}

// Path returns the location of the YAML config file
func Path() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "planner", "config.yaml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config path: %w", err)
	}
	return filepath.Join(home, ".config", "planner", "config.yaml"), nil
}

// Load builds the configuration. path names an explicit YAML file; when empty
// the default location is tried and a missing file is not an error.
func Load(path string) (Config, error) {
	// .env is a development convenience, its absence is expected
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Normalize(applyEnv(cfg)), err
		}
		path = p
	}

	if err := readFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Normalize(applyEnv(cfg)), nil
		}
		return Normalize(applyEnv(Default())), err
	}

	return Normalize(applyEnv(cfg)), nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg Config) Config {
	cfg.Storage = getEnv("PLANNER_STORAGE", cfg.Storage)
	cfg.DBPath = getEnv("PLANNER_DB_PATH", cfg.DBPath)
	cfg.StorageKey = getEnv("PLANNER_STORAGE_KEY", cfg.StorageKey)
	cfg.Redis.Addr = getEnv("PLANNER_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("PLANNER_REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("PLANNER_REDIS_DB", cfg.Redis.DB)
	cfg.LogMode = getEnv("PLANNER_LOG_MODE", cfg.LogMode)
	cfg.Addr = getEnv("PLANNER_ADDR", cfg.Addr)
	return cfg
}

// Normalize trims values and replaces invalid ones with defaults
func Normalize(cfg Config) Config {
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage != StorageSQLite && cfg.Storage != StorageRedis {
		cfg.Storage = StorageSQLite
	}
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	cfg.StorageKey = strings.TrimSpace(cfg.StorageKey)
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	cfg.Redis.Addr = strings.TrimSpace(cfg.Redis.Addr)
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DB < 0 {
		cfg.Redis.DB = 0
	}
	cfg.LogMode = strings.TrimSpace(cfg.LogMode)
	if cfg.LogMode == "" {
		cfg.LogMode = DefaultLogMode
	}
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

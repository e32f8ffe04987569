// Package store persists the last-used calculation inputs in a key-value
// store so a later session can prefill them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no inputs are stored under a key.
var ErrNotFound = errors.New("no stored inputs")

// Store is a minimal string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Config selects and configures a store backend.
type Config struct {
	Backend      string `yaml:"backend,omitempty" mapstructure:"backend"` // memory, file, redis
	Path         string `yaml:"path,omitempty" mapstructure:"path"`
	RedisAddress string `yaml:"redisAddress,omitempty" mapstructure:"redisAddress"`
	Key          string `yaml:"key,omitempty" mapstructure:"key"`
}

// StoreKey returns the configured key or the default one.
func (c Config) StoreKey() string {
	if strings.TrimSpace(c.Key) == "" {
		return constants.DefaultStoreKey
	}
	return c.Key
}

// New builds the store described by cfg.
func New(logger *zap.Logger, cfg Config) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = constants.DefaultStoreBackend
	}

	logger.Debug("opening input store",
		zap.String("op", "store.New"),
		zap.String("backend", backend),
	)

	switch backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		path := cfg.Path
		if path == "" {
			path = constants.DefaultStoreFile
		}
		return NewFileStore(path), nil
	case "redis":
		addr := cfg.RedisAddress
		if addr == "" {
			addr = constants.DefaultRedisAddress
		}
		return NewRedisStore(addr), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}

// SaveInputs stores the input as JSON under key.
func SaveInputs(s Store, key string, in estimator.Input) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to store inputs: %w", err)
	}
	return nil
}

// LoadInputs reads the input stored under key.
func LoadInputs(s Store, key string) (estimator.Input, error) {
	raw, ok := s.Get(key)
	if !ok {
		return estimator.Input{}, ErrNotFound
	}

	var in estimator.Input
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return estimator.Input{}, fmt.Errorf("failed to decode stored inputs: %w", err)
	}
	return in, nil
}

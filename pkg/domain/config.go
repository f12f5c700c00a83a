package domain

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
	"github.com/felixgeelhaar/ricemill/pkg/domain/roi"
)

// Config is the serialized representation of config.yaml.
type Config struct {
	// QuarterCapacity is the team velocity in story points per quarter.
	QuarterCapacity float64 `yaml:"quarter_capacity"`
	// CostPerPoint is the fully loaded dollar cost of one story point.
	CostPerPoint float64 `yaml:"cost_per_point"`
	// Weights blends the RICE score with the model prediction.
	Weights ranking.Weights `yaml:"weights"`
	// Cache configures the optional ranking snapshot cache.
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig selects the ranking snapshot cache backend. An empty RedisAddr
// means the in-process memory store.
type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr,omitempty"`
	TTL       time.Duration `yaml:"ttl,omitempty"`
}

// DefaultConfig returns the configuration a fresh workspace starts with.
func DefaultConfig() *Config {
	return &Config{
		QuarterCapacity: ranking.DefaultQuarterCapacity,
		CostPerPoint:    roi.DefaultCostPerPoint,
		Weights:         ranking.DefaultWeights(),
		Cache:           CacheConfig{TTL: 5 * time.Minute},
	}
}

// Validate checks the configuration is usable, applying no defaults.
func (c *Config) Validate() error {
	if c.QuarterCapacity <= 0 {
		return fmt.Errorf("quarter_capacity must be positive, got %v", c.QuarterCapacity)
	}
	if c.CostPerPoint <= 0 {
		return fmt.Errorf("cost_per_point must be positive, got %v", c.CostPerPoint)
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %v", c.Cache.TTL)
	}
	return nil
}

package goAccess

import (
	"errors"
	"fmt"
)

// DefaultAdminRole is the reserved role id 0. Holding admin-bit 0 authorizes
// administration of every role; role 0 itself is never grantable.
const DefaultAdminRole = 0

// MaxCapacity is the hard ceiling on role capacity: 32 bytes of bitmap
// storage, 256 role ids. Exceeding it is a deployment configuration error
// caught by [Config.Validate].
const MaxCapacity = 256

// Config defines the deployment-time parameters of a [Store].
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// Capacity is the bitmap width in bits and therefore the exclusive
	// upper bound on role ids. Must be 32, 64, 128, or 256.
	Capacity int

	KV      KVConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// KVConfig configures the backing associative store.
type KVConfig struct {
	// RedisPrefix namespaces every key written by the store.
	// Defaults to "ac".
	RedisPrefix string
}

// AuditConfig configures the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig configures the lock-free operation counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 128-bit capacity,
// "ac" key prefix, audit disabled, metrics enabled without histograms.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Capacity: 128,
		KV: KVConfig{
			RedisPrefix: "ac",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate reports the first deployment configuration error, if any.
func (c Config) Validate() error {
	switch c.Capacity {
	case 32, 64, 128, 256:
	default:
		if c.Capacity > MaxCapacity {
			return fmt.Errorf("capacity %d exceeds hard ceiling %d", c.Capacity, MaxCapacity)
		}
		return fmt.Errorf("capacity must be 32, 64, 128, or 256; got %d", c.Capacity)
	}

	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Package timeouts provides centralized timeout values for handler
// operations. Handlers wrap their persistence calls in
// context.WithTimeout using these values so a slow database call cannot
// hold a response open indefinitely.
//
// Guidelines:
//   - Short: single-document reads and lookups
//   - Medium: list queries, creates, updates
//   - Long: multi-document mutations (batch reorder, deletes with uploads)
package timeouts

import (
	"sync"
	"time"
)

// Defaults used when Configure is not called.
const (
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Short returns the timeout for simple single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and single-document writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-document mutations.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds override values; zero values keep the current setting.
type Config struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure overrides timeout values at startup.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}

package kdtree

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
)

// DefaultParallelThreshold is the subtree size above which the two halves of
// a split are built concurrently.
const DefaultParallelThreshold = 256

// Config controls tree construction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// ParallelThreshold is the number of points both halves of a split must
	// exceed before they are built as two concurrent tasks. Smaller values
	// spawn more goroutines. Must be >= 1. Default: 256.
	ParallelThreshold int

	// MaxParallelism caps the number of goroutines building subtrees at the
	// same time. 1 builds sequentially. 0 means runtime.GOMAXPROCS(0).
	// Must be >= 0. Default: 0 (auto).
	MaxParallelism int

	// Logger receives one debug event per build with the tree's shape and
	// the elapsed time. nil disables logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns the configuration Build uses.
func DefaultConfig() Config {
	return Config{
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// validateConfig reports the first invalid field of cfg.
func validateConfig(cfg *Config) error {
	if cfg.ParallelThreshold < 1 {
		return fmt.Errorf("kdtree: ParallelThreshold must be >= 1, got %d", cfg.ParallelThreshold)
	}
	if cfg.MaxParallelism < 0 {
		return fmt.Errorf("kdtree: MaxParallelism must be >= 0 (0 means GOMAXPROCS), got %d", cfg.MaxParallelism)
	}
	return nil
}

// applyDefaults replaces zero fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = DefaultParallelThreshold
	}
	if cfg.MaxParallelism == 0 {
		cfg.MaxParallelism = runtime.GOMAXPROCS(0)
	}
}

// logger returns the configured logger or a disabled one.
func (cfg *Config) logger() *zerolog.Logger {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return cfg.Logger
}

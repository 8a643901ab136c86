package split

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/splitio/go-client/v6/splitio/conf"
)

var (
	// ErrMissingClientOrKey is returned by the constructors when neither a
	// Split client nor an SDK key was supplied.
	ErrMissingClientOrKey = errors.New("missing client or SDK key")

	// ErrClientAndKey is returned when both a Split client and an SDK key
	// were supplied.
	ErrClientAndKey = errors.New("both a client and an SDK key were supplied, use one")
)

// config collects the constructor inputs.
type config struct {
	sdkKey       string
	client       splitClient
	splitConfig  *conf.SplitSdkConfig
	readyTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Provider.
type Option func(*config)

// WithSplitConfig sets the Split SDK configuration used when the provider
// builds its own client from an SDK key. It has no effect with NewWithClient.
func WithSplitConfig(cfg *conf.SplitSdkConfig) Option {
	return func(c *config) {
		c.splitConfig = cfg
	}
}

// WithReadyTimeout bounds how long construction and Init wait for the Split
// SDK's initial data sync. The SDK waits in whole seconds; d is rounded up.
// Defaults to the SDK config's BlockUntilReady, or 10 seconds.
func WithReadyTimeout(d time.Duration) Option {
	return func(c *config) {
		c.readyTimeout = d
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
// In SDK key mode the logger is also installed as the Split SDK logger unless
// the Split config already carries one.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// withSplitClient adopts an existing client handle.
func withSplitClient(sc splitClient) Option {
	return func(c *config) {
		c.client = sc
	}
}

func newConfig(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// validate reports every construction problem at once.
func (c *config) validate() error {
	var result *multierror.Error

	switch {
	case c.client == nil && c.sdkKey == "":
		result = multierror.Append(result, ErrMissingClientOrKey)
	case c.client != nil && c.sdkKey != "":
		result = multierror.Append(result, ErrClientAndKey)
	}

	if c.readyTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("ready timeout must not be negative, got %s", c.readyTimeout))
	}

	return result.ErrorOrNil()
}

// effectiveReadyTimeout resolves the ready timeout from the option, the Split
// config, or the default, in that order.
func (c *config) effectiveReadyTimeout() time.Duration {
	if c.readyTimeout > 0 {
		return c.readyTimeout
	}
	if c.splitConfig != nil && c.splitConfig.BlockUntilReady > 0 {
		return time.Duration(c.splitConfig.BlockUntilReady) * time.Second
	}
	return defaultReadyTimeout
}

// TestConfig returns an optimized Split SDK configuration for tests and examples.
// This configuration minimizes timeouts, queue sizes, and sync intervals for faster
// execution while maintaining full functionality.
//
// Usage:
//
//	cfg := split.TestConfig()
//	cfg.SplitFile = "./split.yaml"  // For localhost mode
//	provider, err := split.New("localhost", split.WithSplitConfig(cfg))
func TestConfig() *conf.SplitSdkConfig {
	cfg := conf.Default()

	cfg.BlockUntilReady = 5
	cfg.Advanced.HTTPTimeout = 5

	// Debug mode sends every impression instead of batching them.
	cfg.ImpressionsMode = "debug"

	cfg.Advanced.EventsQueueSize = 100
	cfg.Advanced.ImpressionsQueueSize = 100
	cfg.Advanced.EventsBulkSize = 100
	cfg.Advanced.ImpressionsBulkSize = 100

	// SDK minimums.
	cfg.TaskPeriods.SplitSync = 5
	cfg.TaskPeriods.SegmentSync = 30
	cfg.TaskPeriods.ImpressionSync = 60
	cfg.TaskPeriods.EventsSync = 1
	cfg.TaskPeriods.TelemetrySync = 60

	return cfg
}

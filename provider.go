package split

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	of "github.com/open-feature/go-sdk/openfeature"
	"github.com/splitio/go-client/v6/splitio/client"
	"github.com/splitio/go-client/v6/splitio/conf"
	"golang.org/x/sync/singleflight"
)

// Provider is an OpenFeature provider backed by the Split SDK.
//
// It implements of.FeatureProvider, of.StateHandler,
// of.ContextAwareStateHandler, of.EventHandler and of.Tracker.
type Provider struct {
	client       splitClient
	factory      *client.SplitFactory
	splitConfig  *conf.SplitSdkConfig
	gate         *readinessGate
	logger       *slog.Logger
	readyTimeout time.Duration
	eventStream  chan of.Event

	initGroup singleflight.Group
	initWg    sync.WaitGroup
	initMu    sync.Mutex

	mtx sync.RWMutex

	shutdown uint32
	// initFailed is set once Init gave up on the SDK, so a later readiness
	// transition is announced with PROVIDER_READY.
	initFailed atomic.Bool
}

var (
	_ of.FeatureProvider          = (*Provider)(nil)
	_ of.StateHandler             = (*Provider)(nil)
	_ of.ContextAwareStateHandler = (*Provider)(nil)
	_ of.EventHandler             = (*Provider)(nil)
	_ of.Tracker                  = (*Provider)(nil)
)

// New creates a provider that owns a Split client built from sdkKey.
// Use "localhost" as the key to read flags from a local file (see
// conf.SplitSdkConfig.SplitFile).
//
// New blocks up to the ready timeout (WithReadyTimeout) for the SDK's initial
// data sync. A timeout is logged, not returned: the provider is created and
// answers PROVIDER_NOT_READY until the SDK catches up.
func New(sdkKey string, opts ...Option) (*Provider, error) {
	cfg := newConfig(opts...)
	cfg.sdkKey = sdkKey
	return newProvider(cfg)
}

// NewWithClient creates a provider around an existing Split client. The
// provider takes ownership: Shutdown destroys the client.
func NewWithClient(c *client.SplitClient, opts ...Option) (*Provider, error) {
	if c != nil {
		opts = append(opts, withSplitClient(&sdkClient{c: c}))
	}
	return newProvider(newConfig(opts...))
}

func newProvider(cfg *config) (*Provider, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid Split provider configuration: %w", err)
	}

	p := &Provider{
		logger:       cfg.logger.With("source", "split-provider"),
		readyTimeout: cfg.effectiveReadyTimeout(),
		eventStream:  make(chan of.Event, eventChannelBuffer),
	}

	if cfg.client != nil {
		p.client = cfg.client
		p.gate = newReadinessGate(p.client, p.logger)
		p.gate.onReady = p.announceReady
		return p, nil
	}

	splitCfg := conf.Default()
	if cfg.splitConfig != nil {
		copied := *cfg.splitConfig
		splitCfg = &copied
	}
	if splitCfg.Logger == nil {
		splitCfg.Logger = NewSplitLogger(cfg.logger)
	}

	factory, err := client.NewSplitFactory(cfg.sdkKey, splitCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Split factory: %w", err)
	}

	p.factory = factory
	p.splitConfig = splitCfg
	p.client = &sdkClient{c: factory.Client(), factory: factory}
	p.gate = newReadinessGate(p.client, p.logger)
	p.gate.onReady = p.announceReady

	p.logger.Debug("waiting for Split SDK to be ready", "timeout", p.readyTimeout)
	if p.gate.awaitReady(p.readyTimeout) {
		p.logger.Info("Split SDK ready")
	}

	return p, nil
}

// Metadata returns the provider metadata.
func (p *Provider) Metadata() of.Metadata {
	return of.Metadata{
		Name: providerName,
	}
}

// Factory returns the underlying Split SDK factory, or nil when the provider
// was created with NewWithClient.
//
// The provider owns the SDK lifecycle: do not call Destroy or
// BlockUntilReady on the factory's client. After Shutdown the factory is
// unusable.
func (p *Provider) Factory() *client.SplitFactory {
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	return p.factory
}

package split

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"
)

// readinessGate tracks whether the Split SDK finished its initial data sync.
//
// The ready flag starts false and flips to true at most once. Evaluations
// consult isReady so that requests made before the sync completes fail fast
// with PROVIDER_NOT_READY instead of returning a misleading control answer.
type readinessGate struct {
	client  splitClient
	logger  *slog.Logger
	ready   atomic.Bool
	onReady func()
}

func newReadinessGate(c splitClient, logger *slog.Logger) *readinessGate {
	return &readinessGate{client: c, logger: logger}
}

// awaitReady blocks up to timeout waiting for the SDK. A timeout is logged and
// leaves the gate not ready; it is never returned to the caller.
func (g *readinessGate) awaitReady(timeout time.Duration) bool {
	if g.ready.Load() {
		return true
	}

	seconds := blockSeconds(timeout)
	if err := g.block(seconds); err != nil {
		g.logger.Error("Split SDK not ready within timeout",
			"timeout_ms", timeout.Milliseconds(),
			"error", err)
		return false
	}

	g.markReady()
	return true
}

// isReady returns the cached state, re-polling the SDK once while not ready.
func (g *readinessGate) isReady() bool {
	if g.ready.Load() {
		return true
	}

	if !g.probe() {
		g.logger.Error("Split client is not ready")
		return false
	}

	g.markReady()
	return true
}

// markReady performs the single false→true transition.
func (g *readinessGate) markReady() {
	if g.ready.CompareAndSwap(false, true) && g.onReady != nil {
		g.onReady()
	}
}

// probe asks the SDK for its readiness without waiting.
func (g *readinessGate) probe() (ready bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Split readiness probe failed", "panic", r)
			ready = false
		}
	}()
	return g.client.IsReady()
}

// block calls BlockUntilReady, converting a panic into an error.
func (g *readinessGate) block(seconds int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("BlockUntilReady panicked: %v", r)
		}
	}()
	return g.client.BlockUntilReady(seconds)
}

// blockSeconds converts timeout to the whole seconds BlockUntilReady expects,
// rounding up and never going below minBlockSeconds.
func blockSeconds(timeout time.Duration) int {
	seconds := int(math.Ceil(timeout.Seconds()))
	if seconds < minBlockSeconds {
		return minBlockSeconds
	}
	return seconds
}

package split

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	of "github.com/open-feature/go-sdk/openfeature"
)

// initTimeoutBuffer is added to the ready timeout when Init builds its own
// context, so the SDK's own timeout fires first.
const initTimeoutBuffer = 5 * time.Second

// errShutdown is returned by Init after Shutdown.
var errShutdown = errors.New("provider has been shut down, create a new provider instance")

// Init implements StateHandler.
// Delegates to InitWithContext with a timeout of the ready timeout plus a buffer.
func (p *Provider) Init(evaluationContext of.EvaluationContext) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.readyTimeout+initTimeoutBuffer)
	defer cancel()

	return p.InitWithContext(ctx, evaluationContext)
}

// InitWithContext waits for the Split SDK's initial data sync.
//
// It returns nil as soon as the SDK is ready. Otherwise it waits up to the
// ready timeout, or until ctx is done, and returns an error describing why the
// SDK is still not ready. The provider stays usable after such an error:
// evaluations answer PROVIDER_NOT_READY, and a PROVIDER_READY event is
// emitted once the SDK catches up.
//
// Concurrent calls share a single wait.
func (p *Provider) InitWithContext(ctx context.Context, _ of.EvaluationContext) error {
	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive {
		return fmt.Errorf("cannot initialize provider: %w", errShutdown)
	}

	if p.gate.ready.Load() {
		p.logger.Debug("provider already initialized")
		return nil
	}

	_, err, _ := p.initGroup.Do("init", func() (any, error) {
		// BlockUntilReady does not take a context, so it runs on its own
		// goroutine; Shutdown waits for it through initWg. initMu orders the
		// Add against Shutdown's Wait.
		p.initMu.Lock()
		if atomic.LoadUint32(&p.shutdown) == shutdownStateActive {
			p.initMu.Unlock()
			return nil, fmt.Errorf("cannot initialize provider: %w", errShutdown)
		}
		p.initWg.Add(1)
		p.initMu.Unlock()

		readyCh := make(chan bool, 1)
		go func() {
			defer p.initWg.Done()
			readyCh <- p.gate.awaitReady(p.readyTimeout)
		}()

		select {
		case ready := <-readyCh:
			if ready {
				return nil, nil
			}
			return nil, p.failInit(fmt.Errorf("split SDK not ready within %s", p.readyTimeout))
		case <-ctx.Done():
			// The SDK may have become ready just as ctx expired.
			select {
			case ready := <-readyCh:
				if ready {
					p.logger.Debug("SDK ready despite context cancellation")
					return nil, nil
				}
			default:
			}
			return nil, p.failInit(fmt.Errorf("initialization canceled: %w", ctx.Err()))
		}
	})

	return err
}

// failInit records that Init gave up and logs the reason.
func (p *Provider) failInit(err error) error {
	p.initFailed.Store(true)
	p.logger.Error("Split provider initialization incomplete, serving PROVIDER_NOT_READY", "error", err)
	if p.gate.ready.Load() {
		// Readiness landed between the failed wait and the flag above; the
		// transition callback saw initFailed unset.
		p.announceReady()
	}
	return err
}

// Shutdown implements StateHandler.
// Delegates to ShutdownWithContext with defaultShutdownTimeout.
func (p *Provider) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	_ = p.ShutdownWithContext(ctx) //nolint:errcheck // Shutdown() has no return value per OpenFeature interface
}

// ShutdownWithContext shuts the provider down and destroys the Split client.
//
// The provider is marked shut down immediately: evaluations answer
// PROVIDER_NOT_READY and Track drops events from then on. Client destruction
// runs within ctx; if ctx expires first, ctx.Err() is returned and destruction
// finishes in the background. Calling it again is a no-op.
func (p *Provider) ShutdownWithContext(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&p.shutdown, shutdownStateInactive, shutdownStateActive) {
		p.logger.Debug("provider already shut down")
		return nil
	}

	p.logger.Debug("shutting down Split provider")

	destroyStart := time.Now()
	destroyDone := make(chan struct{})
	go func() {
		// Init goroutines still inside BlockUntilReady must finish before
		// the client goes away.
		p.initMu.Lock()
		p.initWg.Wait()
		p.initMu.Unlock()

		p.mtx.Lock()
		clientToDestroy := p.client
		p.client = nil
		close(p.eventStream)
		p.mtx.Unlock()

		if clientToDestroy != nil {
			clientToDestroy.Destroy()
		}
		close(destroyDone)
	}()

	select {
	case <-destroyDone:
		p.logger.Debug("Split SDK client destroyed", "duration_ms", time.Since(destroyStart).Milliseconds())
		return nil
	case <-ctx.Done():
		p.logger.Warn("context done during Split SDK destroy, finishing in background",
			"elapsed_ms", time.Since(destroyStart).Milliseconds(),
			"error", ctx.Err())
		return ctx.Err()
	}
}

// Status returns the current state of the provider: ReadyState once the
// Split SDK finished its initial sync, NotReadyState before that and after
// Shutdown.
func (p *Provider) Status() of.State {
	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive {
		return of.NotReadyState
	}
	if p.gate.isReady() {
		return of.ReadyState
	}
	return of.NotReadyState
}

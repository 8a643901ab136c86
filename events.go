package split

import (
	"sync/atomic"

	of "github.com/open-feature/go-sdk/openfeature"
)

// EventChannel returns a channel for receiving provider lifecycle events.
//
// This method implements the EventHandler interface. The OpenFeature SDK
// uses this channel to receive events about provider state changes.
//
// Events Emitted:
//   - PROVIDER_READY: the Split SDK finished its initial sync after Init had
//     already given up waiting for it (Init itself reports readiness through
//     its return value)
//
// The channel is buffered; overflow events are dropped and logged. It is
// closed by Shutdown.
func (p *Provider) EventChannel() <-chan of.Event {
	return p.eventStream
}

// announceReady is the readiness gate's transition callback.
func (p *Provider) announceReady() {
	if !p.initFailed.Load() {
		return
	}
	p.logger.Info("Split SDK became ready after initialization timeout")
	p.emitEvent(&of.Event{
		ProviderName: providerName,
		EventType:    of.ProviderReady,
		ProviderEventDetails: of.ProviderEventDetails{
			Message: "Split SDK ready",
		},
	})
}

// emitEvent sends an event to the event channel without blocking.
//
// If the channel buffer is full, the event is dropped and a warning is logged.
// Once the provider is shut down the channel is closed and the send is skipped.
func (p *Provider) emitEvent(event *of.Event) {
	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive {
		return
	}

	// The read lock keeps Shutdown from closing the channel mid-send.
	p.mtx.RLock()
	defer p.mtx.RUnlock()

	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive {
		return
	}

	select {
	case p.eventStream <- *event:
	default:
		p.logger.Warn("event channel full, dropping event", "eventType", event.EventType)
	}
}

package split

import (
	"context"
	"sync/atomic"

	of "github.com/open-feature/go-sdk/openfeature"
)

// Track sends a custom event to Split.
//
// This method implements the Tracker interface. The evaluation context must
// carry a targeting key and a TrafficTypeKey attribute, and trackingEventName
// must be non-empty; otherwise the event is logged and dropped without
// reaching Split. details supplies the event value and properties; its zero
// value sends value 0 and no properties.
//
// Example:
//
//	evalCtx := openfeature.NewEvaluationContext("user-123", map[string]any{
//	    split.TrafficTypeKey: "user",
//	})
//	details := openfeature.NewTrackingEventDetails(49.99).Add("currency", "USD")
//	client.Track(ctx, "checkout", evalCtx, details)
func (p *Provider) Track(ctx context.Context, trackingEventName string, evaluationContext of.EvaluationContext, details of.TrackingEventDetails) {
	if isEmptyContext(evaluationContext) {
		p.logger.Error("track: evaluation context missing, event dropped", "event", trackingEventName)
		return
	}
	if trackingEventName == "" {
		p.logger.Error("track: event name missing, event dropped")
		return
	}
	key, ok := trackingKey(evaluationContext)
	if !ok {
		p.logger.Error("track: targeting key missing, event dropped", "event", trackingEventName)
		return
	}
	trafficType, ok := trafficTypeFromContext(evaluationContext)
	if !ok {
		p.logger.Error("track: traffic type missing, event dropped", "event", trackingEventName, "attribute", TrafficTypeKey)
		return
	}
	if err := ctx.Err(); err != nil {
		p.logger.Error("track: context done, event dropped", "event", trackingEventName, "error", err)
		return
	}

	properties := details.Attributes()
	if properties == nil {
		properties = map[string]any{}
	}

	p.mtx.RLock()
	defer p.mtx.RUnlock()

	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive || p.client == nil {
		p.logger.Error("track: provider shut down, event dropped", "event", trackingEventName)
		return
	}

	if err := p.client.Track(key, trafficType, trackingEventName, details.Value(), properties); err != nil {
		p.logger.Error("track: Split SDK rejected event", "event", trackingEventName, "error", err)
		return
	}
	p.logger.Debug("event tracked", "event", trackingEventName, "traffic_type", trafficType, "value", details.Value())
}

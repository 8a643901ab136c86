package split

import (
	"log/slog"

	of "github.com/open-feature/go-sdk/openfeature"
)

// attributesFromContext builds the attribute map handed to the Split SDK.
// The targeting key is identity, not an attribute, and is left out.
func attributesFromContext(ec of.FlattenedContext) map[string]any {
	attributes := make(map[string]any, len(ec))
	for k, v := range ec {
		if k == of.TargetingKey {
			continue
		}
		attributes[k] = v
	}
	return attributes
}

// targetingKeyFromContext returns the targeting key of a flattened context.
// Missing, empty and non-string keys are all reported as absent.
func targetingKeyFromContext(ec of.FlattenedContext, logger *slog.Logger) (string, bool) {
	key, ok := ec[of.TargetingKey].(string)
	if !ok || key == "" {
		logger.Error("targeting key missing from evaluation context")
		return "", false
	}
	return key, true
}

// trackingKey returns the targeting key of an unflattened context, falling
// back to a "targetingKey" attribute.
func trackingKey(ec of.EvaluationContext) (string, bool) {
	if key := ec.TargetingKey(); key != "" {
		return key, true
	}
	key, ok := ec.Attribute(of.TargetingKey).(string)
	return key, ok && key != ""
}

func trafficTypeFromContext(ec of.EvaluationContext) (string, bool) {
	trafficType, ok := ec.Attribute(TrafficTypeKey).(string)
	return trafficType, ok && trafficType != ""
}

// isEmptyContext reports whether ec is the zero EvaluationContext.
func isEmptyContext(ec of.EvaluationContext) bool {
	return ec.TargetingKey() == "" && len(ec.Attributes()) == 0
}

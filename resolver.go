package split

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	of "github.com/open-feature/go-sdk/openfeature"
	"github.com/splitio/go-client/v6/splitio/client"
)

// valueKind is the OpenFeature type a treatment is coerced into.
type valueKind int

const (
	boolKind valueKind = iota
	stringKind
	intKind
	floatKind
	objectKind
)

func (k valueKind) String() string {
	switch k {
	case boolKind:
		return "boolean"
	case stringKind:
		return "string"
	case intKind:
		return "int"
	case floatKind:
		return "float"
	case objectKind:
		return "object"
	default:
		return "unknown"
	}
}

// configPreviewLen caps how much of a dynamic configuration is logged.
const configPreviewLen = 100

// resolution is the type-independent outcome of one evaluation. value holds
// the coerced value and is nil whenever detail carries an error.
type resolution struct {
	value  any
	detail of.ProviderResolutionDetail
}

// resolve runs one evaluation: readiness, targeting key, SDK call, control
// detection and coercion, in that order. Every outcome is reported through
// the returned resolution; nothing is thrown.
func (p *Provider) resolve(ctx context.Context, flag string, kind valueKind, ec of.FlattenedContext) resolution {
	p.logger.Debug("evaluating flag", "flag", flag, "type", kind.String())

	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive || !p.gate.isReady() {
		p.logger.Error("flag evaluation failed, provider not ready", "flag", flag)
		return resolution{detail: resolutionDetailProviderNotReady()}
	}

	key, ok := targetingKeyFromContext(ec, p.logger)
	if !ok {
		p.logger.Error("flag evaluation failed, targeting key missing", "flag", flag)
		return resolution{detail: resolutionDetailTargetingKeyMissing()}
	}

	if err := ctx.Err(); err != nil {
		p.logger.Error("flag evaluation canceled", "flag", flag, "error", err)
		return resolution{detail: resolutionDetailContextCancelled(err)}
	}

	result, ok := p.treatmentWithConfig(key, flag, attributesFromContext(ec))
	if !ok {
		p.logger.Error("flag evaluation failed, provider shut down", "flag", flag)
		return resolution{detail: resolutionDetailProviderNotReady()}
	}
	p.logger.Debug("Split treatment received", "flag", flag, "treatment", result.Treatment, "has_config", result.Config != nil)

	if noTreatment(result.Treatment) {
		p.logger.Error("flag not found", "flag", flag, "treatment", result.Treatment)
		return resolution{detail: resolutionDetailNotFound()}
	}

	value, err := coerce(kind, result)
	if err != nil {
		p.logger.Error("cannot parse treatment",
			"flag", flag,
			"type", kind.String(),
			"treatment", result.Treatment,
			"config_preview", configPreview(result.Config),
			"error", err)
		return resolution{detail: resolutionDetailParseError(err.Error())}
	}

	p.logger.Debug("evaluation successful", "flag", flag, "type", kind.String(), "treatment", result.Treatment)
	return resolution{
		value:  value,
		detail: resolutionDetailFound(result.Treatment, result.Config),
	}
}

// treatmentWithConfig calls the SDK under the read lock so Shutdown cannot
// destroy the client mid-call. It reports false once the provider is shut down.
func (p *Provider) treatmentWithConfig(key, flag string, attributes map[string]any) (client.TreatmentResult, bool) {
	p.mtx.RLock()
	defer p.mtx.RUnlock()

	if atomic.LoadUint32(&p.shutdown) == shutdownStateActive || p.client == nil {
		return client.TreatmentResult{}, false
	}
	return p.client.TreatmentWithConfig(key, flag, attributes), true
}

// coerce converts a treatment into the Go value of kind.
func coerce(kind valueKind, result client.TreatmentResult) (any, error) {
	switch kind {
	case boolKind:
		v, err := parseBoolTreatment(result.Treatment)
		if err != nil {
			return nil, err
		}
		return v, nil
	case stringKind:
		return result.Treatment, nil
	case intKind:
		v, err := strconv.ParseInt(result.Treatment, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("treatment %q is not an integer: %w", result.Treatment, err)
		}
		return v, nil
	case floatKind:
		v, err := strconv.ParseFloat(result.Treatment, 64)
		if err != nil {
			return nil, fmt.Errorf("treatment %q is not a float: %w", result.Treatment, err)
		}
		return v, nil
	case objectKind:
		v, err := parseConfigObject(result.Config)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported value type %d", kind)
	}
}

// parseBoolTreatment accepts on/off and true/false in any letter case.
func parseBoolTreatment(treatment string) (bool, error) {
	switch strings.ToLower(treatment) {
	case "true", "on":
		return true, nil
	case "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("treatment %q is not a boolean", treatment)
}

// parseConfigObject decodes a dynamic configuration into a flat object of
// strings. Numbers and booleans keep their JSON text; nested objects, arrays
// and nulls are rejected.
func parseConfigObject(config *string) (map[string]any, error) {
	if config == nil || *config == "" {
		return nil, errors.New("treatment has no configuration")
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal([]byte(*config), &members); err != nil {
		return nil, fmt.Errorf("configuration is not a JSON object: %w", err)
	}
	if members == nil {
		return nil, errors.New("configuration is not a JSON object")
	}

	object := make(map[string]any, len(members))
	for name, raw := range members {
		s, err := jsonScalarString(raw)
		if err != nil {
			return nil, fmt.Errorf("configuration member %q: %w", name, err)
		}
		object[name] = s
	}
	return object, nil
}

func jsonScalarString(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("value %s is not a string", truncateString(string(raw), configPreviewLen))
	}
}

func configPreview(config *string) string {
	if config == nil {
		return ""
	}
	return truncateString(*config, configPreviewLen)
}

package split

import (
	"context"

	of "github.com/open-feature/go-sdk/openfeature"
)

// BooleanEvaluation evaluates a feature flag and returns a boolean value.
//
// Treatments "on" and "true" map to true, "off" and "false" to false, in any
// letter case. Any other treatment is a PARSE_ERROR and def is returned.
//
// A targeting key must be present in ec. The remaining attributes in ec are
// passed to Split for targeting rule evaluation.
func (p *Provider) BooleanEvaluation(ctx context.Context, flag string, def bool, ec of.FlattenedContext) of.BoolResolutionDetail {
	res := p.resolve(ctx, flag, boolKind, ec)
	value, ok := res.value.(bool)
	if !ok {
		value = def
	}
	return of.BoolResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: res.detail,
	}
}

// StringEvaluation evaluates a feature flag and returns the treatment as is.
func (p *Provider) StringEvaluation(ctx context.Context, flag, def string, ec of.FlattenedContext) of.StringResolutionDetail {
	res := p.resolve(ctx, flag, stringKind, ec)
	value, ok := res.value.(string)
	if !ok {
		value = def
	}
	return of.StringResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: res.detail,
	}
}

// FloatEvaluation evaluates a feature flag and parses the treatment as a float64.
func (p *Provider) FloatEvaluation(ctx context.Context, flag string, def float64, ec of.FlattenedContext) of.FloatResolutionDetail {
	res := p.resolve(ctx, flag, floatKind, ec)
	value, ok := res.value.(float64)
	if !ok {
		value = def
	}
	return of.FloatResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: res.detail,
	}
}

// IntEvaluation evaluates a feature flag and parses the treatment as a
// base-10 int64.
func (p *Provider) IntEvaluation(ctx context.Context, flag string, def int64, ec of.FlattenedContext) of.IntResolutionDetail {
	res := p.resolve(ctx, flag, intKind, ec)
	value, ok := res.value.(int64)
	if !ok {
		value = def
	}
	return of.IntResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: res.detail,
	}
}

// ObjectEvaluation evaluates a feature flag and returns its dynamic
// configuration as a map[string]any of string values.
//
// Unlike the other types, the value comes from the configuration attached to
// the treatment, not from the treatment name; the treatment is reported as the
// variant. A treatment without configuration, or whose configuration is not a
// flat JSON object, is a PARSE_ERROR.
//
// Example:
//
//	// split.yaml: config: "{\"color\": \"blue\", \"size\": 3}"
//	v, _ := client.ObjectValue(ctx, "banner", nil, evalCtx)
//	// v = map[string]any{"color": "blue", "size": "3"}
func (p *Provider) ObjectEvaluation(ctx context.Context, flag string, def any, ec of.FlattenedContext) of.InterfaceResolutionDetail {
	res := p.resolve(ctx, flag, objectKind, ec)
	value := def
	if res.value != nil {
		value = res.value
	}
	return of.InterfaceResolutionDetail{
		Value:                    value,
		ProviderResolutionDetail: res.detail,
	}
}

// Hooks returns the provider's hooks. The provider registers none.
func (p *Provider) Hooks() []of.Hook {
	return nil
}

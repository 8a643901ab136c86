// Package split provides an OpenFeature provider backed by the Split.io
// feature flag SDK.
//
// # Basic Usage
//
//	provider, err := split.New("YOUR_SDK_KEY")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := openfeature.SetProviderAndWait(provider); err != nil {
//	    log.Printf("Split not ready yet: %v", err)
//	}
//
//	client := openfeature.NewClient("my-app")
//	evalCtx := openfeature.NewEvaluationContext("user-123", map[string]any{
//	    "email": "user@example.com",
//	})
//	enabled, _ := client.BooleanValue(context.Background(), "new-feature", false, evalCtx)
//
// An existing Split client can be adopted with NewWithClient; the provider
// then owns it and destroys it on Shutdown.
//
// # Evaluation
//
// Split returns a string treatment per flag, optionally with a JSON
// configuration. Booleans accept on/off and true/false, numbers are parsed
// from the treatment, strings are returned as is, and objects are built from
// the configuration. Successful results carry the treatment as Variant, the
// TARGETING_MATCH reason and, when present, the raw configuration as
// FlagMetadata["config"].
//
// Failures never panic and always return the default value with the "control"
// variant and one of PROVIDER_NOT_READY, TARGETING_KEY_MISSING,
// FLAG_NOT_FOUND or PARSE_ERROR.
//
// # Tracking
//
// Track forwards events to Split. The evaluation context must carry a
// targeting key and a "trafficType" attribute.
//
// # Concurrency
//
// The provider is safe for concurrent use. Readiness is cached once the SDK
// reports ready and never reverts.
package split

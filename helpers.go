package split

import (
	of "github.com/open-feature/go-sdk/openfeature"
)

// Error codes produced by this provider:
//
//   - PROVIDER_NOT_READY: the Split SDK has not finished its initial sync,
//     or the provider was shut down.
//   - TARGETING_KEY_MISSING: no non-empty string targeting key in the context.
//   - FLAG_NOT_FOUND: Split returned the "control" treatment.
//   - PARSE_ERROR: the treatment (or, for objects, its configuration) could
//     not be coerced to the requested type.
//   - GENERAL: the caller's context was done before the SDK was called.
//
// Every error result carries the "control" variant and the ERROR reason.

// resolutionDetailProviderNotReady creates a resolution detail for provider not ready.
func resolutionDetailProviderNotReady() of.ProviderResolutionDetail {
	return resolutionDetailError(of.NewProviderNotReadyResolutionError("Split SDK is not ready"))
}

// resolutionDetailTargetingKeyMissing creates a resolution detail for missing targeting key.
func resolutionDetailTargetingKeyMissing() of.ProviderResolutionDetail {
	return resolutionDetailError(of.NewTargetingKeyMissingResolutionError("targeting key missing"))
}

// resolutionDetailNotFound creates a resolution detail for a flag not found error.
func resolutionDetailNotFound() of.ProviderResolutionDetail {
	return resolutionDetailError(of.NewFlagNotFoundResolutionError("flag not found"))
}

// resolutionDetailParseError creates a resolution detail for a parse error.
func resolutionDetailParseError(msg string) of.ProviderResolutionDetail {
	return resolutionDetailError(of.NewParseErrorResolutionError(msg))
}

// resolutionDetailContextCancelled creates a resolution detail for canceled context.
func resolutionDetailContextCancelled(err error) of.ProviderResolutionDetail {
	return resolutionDetailError(of.NewGeneralResolutionError(err.Error()))
}

func resolutionDetailError(resErr of.ResolutionError) of.ProviderResolutionDetail {
	return of.ProviderResolutionDetail{
		ResolutionError: resErr,
		Reason:          of.ErrorReason,
		Variant:         controlTreatment,
	}
}

// resolutionDetailFound creates the detail of a successful evaluation. The raw
// dynamic configuration, when the treatment has one, is exposed as flag
// metadata under ConfigMetadataKey.
//
// TARGETING_MATCH is reported for every success: the Split SDK does not say
// whether a treatment came from a targeting rule, a percentage split or the
// default treatment.
func resolutionDetailFound(variant string, config *string) of.ProviderResolutionDetail {
	detail := of.ProviderResolutionDetail{
		Reason:  of.TargetingMatchReason,
		Variant: variant,
	}
	if config != nil && *config != "" {
		detail.FlagMetadata = of.FlagMetadata{ConfigMetadataKey: *config}
	}
	return detail
}

// noTreatment checks if a treatment is empty or the control treatment.
func noTreatment(treatment string) bool {
	return treatment == "" || treatment == controlTreatment
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated.
// Used for logging previews of potentially large config strings.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

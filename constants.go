package split

import "time"

const (
	// providerName is reported through Metadata and on emitted events.
	providerName = "Split"

	// Timeouts

	// defaultReadyTimeout bounds the wait for the initial data sync when the
	// provider builds its own Split client from an SDK key.
	defaultReadyTimeout = 10 * time.Second

	// minBlockSeconds is the smallest wait BlockUntilReady accepts.
	minBlockSeconds = 1

	// defaultShutdownTimeout bounds Shutdown when no context is supplied.
	defaultShutdownTimeout = 30 * time.Second

	// Event Handling

	// eventChannelBuffer is the buffer size for the provider's event channel.
	// Overflow events are dropped (logged as warnings).
	eventChannelBuffer = 128

	// Atomic States

	// shutdownStateActive indicates the provider has been shut down (atomic flag = 1).
	shutdownStateActive = 1

	// shutdownStateInactive indicates the provider is active (atomic flag = 0).
	shutdownStateInactive = 0

	// Split SDK Constants

	// controlTreatment is the treatment returned by the Split SDK when a flag
	// does not exist or cannot be evaluated.
	controlTreatment = "control"

	// Evaluation Context Keys

	// TrafficTypeKey is the evaluation context attribute holding the Split
	// traffic type. It is required by Track and ignored by evaluations.
	TrafficTypeKey = "trafficType"

	// Flag Metadata Keys

	// ConfigMetadataKey is the FlagMetadata key under which the raw dynamic
	// configuration JSON of a treatment is returned.
	ConfigMetadataKey = "config"
)

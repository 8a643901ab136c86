package split

import (
	"github.com/splitio/go-client/v6/splitio/client"
)

// splitClient is the subset of the Split SDK client the provider talks to.
// The production implementation is sdkClient; tests supply a mock.
type splitClient interface {
	// TreatmentWithConfig evaluates a feature flag for key and returns the
	// treatment together with its dynamic configuration, if any.
	TreatmentWithConfig(key, flag string, attributes map[string]any) client.TreatmentResult
	// Track records a custom event.
	Track(key, trafficType, eventType string, value float64, properties map[string]any) error
	// BlockUntilReady waits up to seconds for the initial data sync.
	BlockUntilReady(seconds int) error
	// IsReady reports whether the initial data sync has completed.
	IsReady() bool
	// Destroy releases SDK resources.
	Destroy()
}

// sdkClient adapts *client.SplitClient to splitClient. factory is nil when
// the client was adopted through NewWithClient.
type sdkClient struct {
	c       *client.SplitClient
	factory *client.SplitFactory
}

var _ splitClient = (*sdkClient)(nil)

func (s *sdkClient) TreatmentWithConfig(key, flag string, attributes map[string]any) client.TreatmentResult {
	return s.c.TreatmentWithConfig(key, flag, attributes)
}

func (s *sdkClient) Track(key, trafficType, eventType string, value float64, properties map[string]any) error {
	return s.c.Track(key, trafficType, eventType, value, properties)
}

func (s *sdkClient) BlockUntilReady(seconds int) error {
	return s.c.BlockUntilReady(seconds)
}

// IsReady asks the factory when there is one. An adopted client only exposes
// BlockUntilReady, which answers a zero timer at once: nil when ready, an
// error otherwise.
func (s *sdkClient) IsReady() bool {
	if s.factory != nil {
		return s.factory.IsReady()
	}
	return s.c.BlockUntilReady(0) == nil
}

func (s *sdkClient) Destroy() {
	s.c.Destroy()
}

package split

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/splitio/go-client/v6/splitio/client"
	"github.com/stretchr/testify/require"
)

// trackCall records one Track invocation.
type trackCall struct {
	key         string
	trafficType string
	eventType   string
	value       float64
	properties  map[string]any
}

// treatmentCall records one TreatmentWithConfig invocation.
type treatmentCall struct {
	key        string
	flag       string
	attributes map[string]any
}

// mockSplitClient is a splitClient whose behavior is set per test through the
// Func fields. Unset fields answer as a ready SDK with no flags.
type mockSplitClient struct {
	TreatmentWithConfigFunc func(key, flag string, attributes map[string]any) client.TreatmentResult
	TrackFunc               func(key, trafficType, eventType string, value float64, properties map[string]any) error
	BlockUntilReadyFunc     func(seconds int) error
	IsReadyFunc             func() bool

	mu             sync.Mutex
	treatmentCalls []treatmentCall
	trackCalls     []trackCall
	blockCalls     []int
	destroyCalls   int
}

var _ splitClient = (*mockSplitClient)(nil)

func (m *mockSplitClient) TreatmentWithConfig(key, flag string, attributes map[string]any) client.TreatmentResult {
	m.mu.Lock()
	m.treatmentCalls = append(m.treatmentCalls, treatmentCall{key: key, flag: flag, attributes: attributes})
	m.mu.Unlock()

	if m.TreatmentWithConfigFunc != nil {
		return m.TreatmentWithConfigFunc(key, flag, attributes)
	}
	return client.TreatmentResult{Treatment: controlTreatment}
}

func (m *mockSplitClient) Track(key, trafficType, eventType string, value float64, properties map[string]any) error {
	m.mu.Lock()
	m.trackCalls = append(m.trackCalls, trackCall{
		key:         key,
		trafficType: trafficType,
		eventType:   eventType,
		value:       value,
		properties:  properties,
	})
	m.mu.Unlock()

	if m.TrackFunc != nil {
		return m.TrackFunc(key, trafficType, eventType, value, properties)
	}
	return nil
}

func (m *mockSplitClient) BlockUntilReady(seconds int) error {
	m.mu.Lock()
	m.blockCalls = append(m.blockCalls, seconds)
	m.mu.Unlock()

	if m.BlockUntilReadyFunc != nil {
		return m.BlockUntilReadyFunc(seconds)
	}
	return nil
}

func (m *mockSplitClient) IsReady() bool {
	if m.IsReadyFunc != nil {
		return m.IsReadyFunc()
	}
	return true
}

func (m *mockSplitClient) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyCalls++
}

func (m *mockSplitClient) treatments() []treatmentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]treatmentCall(nil), m.treatmentCalls...)
}

func (m *mockSplitClient) tracks() []trackCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]trackCall(nil), m.trackCalls...)
}

func (m *mockSplitClient) destroyed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyCalls
}

// withTreatments makes the mock answer from a flag→result table; unknown
// flags get the control treatment.
func (m *mockSplitClient) withTreatments(results map[string]client.TreatmentResult) *mockSplitClient {
	m.TreatmentWithConfigFunc = func(_, flag string, _ map[string]any) client.TreatmentResult {
		if r, ok := results[flag]; ok {
			return r
		}
		return client.TreatmentResult{Treatment: controlTreatment}
	}
	return m
}

// readyGate is a switchable readiness source for mocks.
type readyGate struct {
	mu    sync.Mutex
	ready bool
}

func (r *readyGate) set(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = v
}

func (r *readyGate) get() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// newNotReadyMock returns a mock whose readiness follows gate. BlockUntilReady
// waits briefly and fails while the gate is closed.
func newNotReadyMock(gate *readyGate) *mockSplitClient {
	return &mockSplitClient{
		IsReadyFunc: gate.get,
		BlockUntilReadyFunc: func(int) error {
			if gate.get() {
				return nil
			}
			time.Sleep(10 * time.Millisecond)
			if gate.get() {
				return nil
			}
			return errNotReadyForTest
		},
	}
}

var errNotReadyForTest = errors.New("SDK Initialization: time of 1 exceeded")

// newTestProvider builds a provider around mock, sending logs to a buffer.
func newTestProvider(t *testing.T, mock *mockSplitClient, opts ...Option) (*Provider, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&syncBuffer{buf: &buf}, &slog.HandlerOptions{Level: slog.LevelDebug}))

	opts = append([]Option{withSplitClient(mock), WithLogger(logger)}, opts...)
	p, err := newProvider(newConfig(opts...))
	require.NoError(t, err)
	t.Cleanup(func() { p.Shutdown() })
	return p, &buf
}

// syncBuffer serializes writes from concurrent loggers.
type syncBuffer struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func strPtr(s string) *string {
	return &s
}

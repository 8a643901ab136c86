package split

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestBlockSeconds(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    int
	}{
		{0, 1},
		{-time.Second, 1},
		{100 * time.Millisecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
		{10 * time.Second, 10},
	}
	for _, tt := range tests {
		t.Run(tt.timeout.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, blockSeconds(tt.timeout))
		})
	}
}

func TestReadinessGateIsMonotonic(t *testing.T) {
	gate := &readyGate{}
	mock := newNotReadyMock(gate)
	g := newReadinessGate(mock, discardLogger())

	var transitions atomic.Int32
	g.onReady = func() { transitions.Add(1) }

	assert.False(t, g.isReady())

	gate.set(true)
	assert.True(t, g.isReady())

	gate.set(false)
	assert.True(t, g.isReady())
	assert.True(t, g.awaitReady(time.Second))
	assert.Equal(t, int32(1), transitions.Load())

	mock.mu.Lock()
	assert.Empty(t, mock.blockCalls, "a ready gate does not wait again")
	mock.mu.Unlock()
}

func TestReadinessGateAwait(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		g := newReadinessGate(&mockSplitClient{}, discardLogger())
		assert.True(t, g.awaitReady(time.Second))
		assert.True(t, g.ready.Load())
	})

	t.Run("timeout leaves gate closed", func(t *testing.T) {
		g := newReadinessGate(newNotReadyMock(&readyGate{}), discardLogger())
		assert.False(t, g.awaitReady(time.Second))
		assert.False(t, g.ready.Load())
	})

	t.Run("rounds timeout up to whole seconds", func(t *testing.T) {
		mock := &mockSplitClient{}
		g := newReadinessGate(mock, discardLogger())
		g.awaitReady(2500 * time.Millisecond)

		mock.mu.Lock()
		defer mock.mu.Unlock()
		assert.Equal(t, []int{3}, mock.blockCalls)
	})
}

func TestReadinessGateRecoversFromPanics(t *testing.T) {
	mock := &mockSplitClient{
		IsReadyFunc:         func() bool { panic("closed client") },
		BlockUntilReadyFunc: func(int) error { panic("closed client") },
	}
	g := newReadinessGate(mock, discardLogger())

	assert.NotPanics(t, func() {
		assert.False(t, g.isReady())
		assert.False(t, g.awaitReady(time.Second))
	})
}

func TestReadinessGateConcurrentTransition(t *testing.T) {
	g := newReadinessGate(&mockSplitClient{}, discardLogger())

	var transitions atomic.Int32
	g.onReady = func() { transitions.Add(1) }

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.isReady()
		}()
	}
	wg.Wait()

	assert.True(t, g.isReady())
	assert.Equal(t, int32(1), transitions.Load())
}

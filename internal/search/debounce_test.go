package search

import (
	"sync"
	"testing"
	"time"

	"clientintel/internal/domain"

	"github.com/stretchr/testify/require"
)

type resultRecorder struct {
	mu         sync.Mutex
	deliveries []string
}

func (r *resultRecorder) record(query string, results []domain.SearchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, query)
}

func (r *resultRecorder) queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

func newTestDebouncer(t *testing.T) (*Debouncer, *resultRecorder) {
	t.Helper()
	recorder := &resultRecorder{}
	d := NewDebouncer(newTestService(t), recorder.record)
	d.debounce = 10 * time.Millisecond
	d.latency = 10 * time.Millisecond
	return d, recorder
}

func Test_Debouncer(t *testing.T) {
	t.Run("delivers after debounce and latency", func(t *testing.T) {
		d, recorder := newTestDebouncer(t)
		defer d.Close()

		d.Query("sarah")
		require.Eventually(t, func() bool {
			return len(recorder.queries()) == 1
		}, time.Second, 5*time.Millisecond)
		require.Equal(t, "sarah", recorder.queries()[0])
		require.False(t, d.Searching())
	})

	t.Run("newer query supersedes older", func(t *testing.T) {
		d, recorder := newTestDebouncer(t)
		defer d.Close()

		d.Query("sar")
		d.Query("sara")
		d.Query("sarah")

		require.Eventually(t, func() bool {
			return !d.Searching() && len(recorder.queries()) > 0
		}, time.Second, 5*time.Millisecond)

		// only the final query is ever delivered
		require.Equal(t, []string{"sarah"}, recorder.queries())
	})

	t.Run("newer query wins even mid flight", func(t *testing.T) {
		d, recorder := newTestDebouncer(t)
		defer d.Close()
		d.latency = 50 * time.Millisecond

		d.Query("tax")
		// let the first request pass its debounce window and start resolving
		time.Sleep(25 * time.Millisecond)
		d.Query("sarah")

		require.Eventually(t, func() bool {
			return !d.Searching() && len(recorder.queries()) > 0
		}, time.Second, 5*time.Millisecond)
		require.Equal(t, []string{"sarah"}, recorder.queries())
	})

	t.Run("empty query clears immediately", func(t *testing.T) {
		d, recorder := newTestDebouncer(t)
		defer d.Close()

		d.Query("sarah")
		d.Query("")

		require.Equal(t, []string{""}, recorder.queries())
		require.False(t, d.Searching())

		// the superseded "sarah" request never lands afterwards
		time.Sleep(50 * time.Millisecond)
		require.Equal(t, []string{""}, recorder.queries())
	})

	t.Run("close stops pending delivery", func(t *testing.T) {
		d, recorder := newTestDebouncer(t)

		d.Query("sarah")
		d.Close()

		time.Sleep(50 * time.Millisecond)
		require.Len(t, recorder.queries(), 0)
		require.False(t, d.Searching())

		// queries after close are ignored
		d.Query("tax")
		time.Sleep(50 * time.Millisecond)
		require.Len(t, recorder.queries(), 0)
	})
}

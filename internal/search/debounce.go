package search

import (
	"context"
	"sync"
	"time"

	"clientintel/internal/domain"
	"clientintel/internal/logger"
)

const (
	// wait after the last keystroke before running the pipeline
	DefaultDebounce = 300 * time.Millisecond
	// artificial delay standing in for a remote call
	DefaultLatency = 400 * time.Millisecond
)

// Debouncer drives the asynchronous search pipeline. Each Query call
// supersedes the previous one: results are tagged with a monotonically
// increasing request id and compared at resolution time, so a stale
// response can never be delivered over a newer one. An empty query clears
// results immediately without invoking the pipeline.
type Debouncer struct {
	service   *Service
	debounce  time.Duration
	latency   time.Duration
	onResults func(query string, results []domain.SearchResult)

	mu       sync.Mutex
	seq      uint64
	timer    *time.Timer
	inFlight int
	closed   bool
}

func NewDebouncer(service *Service, onResults func(query string, results []domain.SearchResult)) *Debouncer {
	return &Debouncer{
		service:   service,
		debounce:  DefaultDebounce,
		latency:   DefaultLatency,
		onResults: onResults,
	}
}

func (d *Debouncer) Query(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.seq++
	id := d.seq

	if d.timer != nil {
		if d.timer.Stop() {
			d.inFlight--
		}
		d.timer = nil
	}

	if query == "" {
		d.onResults("", []domain.SearchResult{})
		return
	}

	d.inFlight++
	d.timer = time.AfterFunc(d.debounce, func() {
		d.run(id, query)
	})
}

func (d *Debouncer) run(id uint64, query string) {
	time.Sleep(d.latency)

	results, err := d.service.Search(context.Background(), query)
	if err != nil {
		logger.New().Errorw("search failed", "query", query, "error", err)
		results = []domain.SearchResult{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight--
	if d.closed || id != d.seq {
		// a newer query arrived while this one was resolving
		return
	}
	d.onResults(query, results)
}

// Searching reports whether any request is still pending resolution.
func (d *Debouncer) Searching() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight > 0
}

// Close stops any pending work. No result callback fires after Close
// returns.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		if d.timer.Stop() {
			d.inFlight--
		}
		d.timer = nil
	}
}

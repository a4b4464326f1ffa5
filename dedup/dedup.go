// Package dedup filters out sentences heard more than once, the way a
// receiver fed by several overlapping antennas or feed aggregators
// commonly needs: the same AIS transmission often reaches more than one
// source and arrives as byte-identical sentences each time.
package dedup

import (
	"sync"
	"time"
)

// Filter reports whether a raw sentence line has already been seen
// within roughly the last 1x to 2x of its configured window. It holds
// its own lock, so one Filter can be shared across goroutines feeding
// it from multiple sources concurrently — unlike parser.Parser and
// reassemble.Reassembler, which are single-owner.
type Filter struct {
	active  map[string]struct{}
	pending map[string]struct{}
	mu      sync.Mutex
	stop    chan struct{}
}

// New creates a Filter and starts the background goroutine that ages
// old entries out every window. Call Close to stop it.
func New(window time.Duration) *Filter {
	f := &Filter{
		active:  make(map[string]struct{}),
		pending: make(map[string]struct{}),
		stop:    make(chan struct{}),
	}
	go f.rotate(window)
	return f
}

// rotate swaps the pending generation into active and starts a fresh
// pending generation every window, so a sentence is remembered for
// somewhere between one and two windows depending on when it arrived.
func (f *Filter) rotate(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for {
		select {
		case <-f.stop:
			return
		case <-ticker.C:
			f.mu.Lock()
			next := make(map[string]struct{}, len(f.active)+len(f.pending))
			f.active = f.pending
			f.pending = next
			f.mu.Unlock()
		}
	}
}

// Close stops the background rotation. Seen can still be called
// afterwards, but entries will never age out.
func (f *Filter) Close() {
	close(f.stop)
}

// Seen reports whether sentence has already been passed to Seen within
// the current window, and records it either way.
func (f *Filter) Seen(sentence string) bool {
	f.mu.Lock()
	_, exists := f.active[sentence]
	if !exists {
		f.active[sentence] = struct{}{}
		f.pending[sentence] = struct{}{}
	}
	f.mu.Unlock()
	return exists
}

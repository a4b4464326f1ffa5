package reassemble

import (
	"time"

	"github.com/cenkalti/backoff"
)

// Supervisor runs CleanupExpired on a Reassembler in the background, on
// the same backing-off schedule logger.AddPeriodic uses for statistics
// output: callers that don't want to drive the sweep themselves from
// their own event loop can start one of these instead (spec.md §5 leaves
// sweep scheduling to the host; this is the opt-in default for hosts
// that don't have one).
//
// A Supervisor owns no reference to the Reassembler beyond calling
// CleanupExpired on it, so the Reassembler itself remains single-owner:
// the host must still not call AddFragment concurrently with a running
// Supervisor without its own synchronization.
type Supervisor struct {
	stop    chan struct{}
	done    chan struct{}
	onSwept func(removed int)
}

// SupervisorConfig tunes the sweep schedule. Zero values fall back to
// defaults of 10 seconds (MinInterval) and 2 minutes (MaxInterval).
type SupervisorConfig struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	// OnSwept, if set, is called after each sweep with the number of
	// groups removed. Useful for wiring sweep counts into a metrics or
	// logging callback; never called concurrently with itself.
	OnSwept func(removed int)
}

const (
	defaultSupervisorMinInterval = 10 * time.Second
	defaultSupervisorMaxInterval = 2 * time.Minute
)

// StartSupervisor launches a goroutine that periodically calls
// r.CleanupExpired. Call Stop to terminate it; failing to do so leaks
// the goroutine.
func StartSupervisor(r *Reassembler, cfg SupervisorConfig) *Supervisor {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultSupervisorMinInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = defaultSupervisorMaxInterval
	}
	s := &Supervisor{
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		onSwept: cfg.OnSwept,
	}
	go s.run(r, cfg)
	return s
}

func (s *Supervisor) run(r *Reassembler, cfg SupervisorConfig) {
	defer close(s.done)
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.MinInterval
	b.MaxInterval = cfg.MaxInterval
	b.RandomizationFactor = 0
	b.Reset()

	timer := time.NewTimer(b.NextBackOff())
	defer timer.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-timer.C:
			removed := r.CleanupExpired()
			if s.onSwept != nil {
				s.onSwept(removed)
			}
			timer.Reset(b.NextBackOff())
		}
	}
}

// Stop terminates the background sweep and waits for it to exit.
func (s *Supervisor) Stop() {
	close(s.stop)
	<-s.done
}

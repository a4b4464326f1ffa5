package logger

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff"
)

const (
	periodicMinSleep = 2 * time.Second
	periodicMaxSleep = 365 * 24 * time.Hour // FIXME max representable
)

// PeriodicFunc is run periodically by a Logger, given a Composer already
// holding the write lock and the time elapsed since its previous run.
type PeriodicFunc func(c *Composer, sinceLast time.Duration)

type periodicLogger struct {
	id       string
	logger   PeriodicFunc
	interval *backoff.ExponentialBackOff
	nextRun  time.Time
	lastRun  time.Time
}

// groups the periodic-logging fields of Logger.
type periodic struct {
	timer   *time.Timer
	loggers []periodicLogger
	m       sync.Mutex
	stop    bool
}

func newPeriodic() periodic {
	return periodic{timer: time.NewTimer(periodicMaxSleep)}
	// New() starts periodicRunner() separately.
}

func (p *periodic) Close() {
	p.m.Lock()
	defer p.m.Unlock()
	p.stop = true
	p.timer.Stop()
	p.timer.Reset(0)
}

// resetTimer finds the periodic logger with the least time remaining and
// schedules the timer to fire then.
func resetTimer(l *Logger, now time.Time) {
	next := now.Add(periodicMaxSleep)
	for i := range l.p.loggers {
		if next.After(l.p.loggers[i].nextRun) {
			next = l.p.loggers[i].nextRun
		}
	}
	l.p.timer.Stop()
	l.p.timer.Reset(next.Sub(now))
}

// runPeriodic runs every logger due before now+minSleep.
func runPeriodic(l *Logger, minSleep time.Duration, started time.Time) {
	c := l.Compose(Info)
	defer c.Close()
	limit := started.Add(minSleep)
	for i := range l.p.loggers {
		if limit.After(l.p.loggers[i].nextRun) {
			l.p.loggers[i].logger(&c, started.Sub(l.p.loggers[i].lastRun))
			next := started.Add(l.p.loggers[i].interval.NextBackOff())
			l.p.loggers[i].lastRun = started
			l.p.loggers[i].nextRun = next
		}
	}
}

func periodicRunner(l *Logger) {
	for {
		now := <-l.p.timer.C
		l.p.m.Lock()
		if l.p.stop {
			l.p.m.Unlock()
			break
		}
		runPeriodic(l, periodicMinSleep, now)
		resetTimer(l, now)
		l.p.m.Unlock()
	}
}

// RunAllPeriodic runs every registered periodic logger immediately,
// ignoring their intervals.
func (l *Logger) RunAllPeriodic() {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := l.clock.Now()
	runPeriodic(l, periodicMaxSleep, n)
	resetTimer(l, n)
}

// AddPeriodic registers f to run on an interval that grows exponentially
// from minInterval towards maxInterval, the same backoff-driven schedule
// this package's Logger has always used for statistics output.
func (l *Logger) AddPeriodic(id string, minInterval, maxInterval time.Duration, f PeriodicFunc) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = minInterval
	b.MaxInterval = maxInterval
	b.RandomizationFactor = 0
	b.Reset()

	l.p.m.Lock()
	defer l.p.m.Unlock()
	for _, p := range l.p.loggers {
		if p.id == id {
			l.Error("a periodic logger with id %s already exists", id)
			return
		}
	}
	added := l.clock.Now()
	l.p.loggers = append(l.p.loggers, periodicLogger{
		id:      id,
		logger:  f,
		interval: b,
		lastRun: added,
		nextRun: added.Add(b.NextBackOff()),
	})
	resetTimer(l, added)
}

// RemovePeriodic unregisters a periodic logger so it never runs again.
func (l *Logger) RemovePeriodic(id string) {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := len(l.p.loggers)
	for i := 0; i < n; i++ {
		if l.p.loggers[i].id == id {
			l.p.loggers[i] = l.p.loggers[n-1]
			l.p.loggers = l.p.loggers[:n-1]
			return
		}
	}
	l.Error("no periodic logger with id %s to remove", id)
}

// Package logger is a small thread-safe, level-gated logger with support
// for periodic statistics callbacks. It is ambient infrastructure used by
// cmd/aisdump; the codec and
// parser facade packages never log internally (spec.md §5: synchronous,
// no I/O on the hot path).
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tormol/aislib/clock"
)

// Level is the importance of a logged event.
type Level uint8

// Log message importance, lowest (most verbose) to highest (least verbose).
const (
	Debug   Level = iota // passed through without a timestamp prefix
	Fatal                // irrecoverable error
	Error                // non-fatal but permanent degradation
	Warning              // temporary degradation or transient error
	Info                 // unimportant but noteworthy
	Ignore               // never printed
)

// fatalExitCode is the code Logger aborts the process with on a Fatal log.
const fatalExitCode int = 3

// Logger is a thread-safe, level-gated, periodic-capable logger. Use Log
// (or one of its level-named wrappers) for one-shot messages, Compose to
// make sure a multi-statement message is written atomically, and
// AddPeriodic for statistics callbacks run on a backing-off interval.
// Should not be copied or dereferenced after creation: it holds mutexes.
type Logger struct {
	writeTo   io.WriteCloser
	writeLock sync.Mutex
	Threshold Level
	clock     clock.Clock
	p         periodic
}

// New creates a Logger writing to writeTo, filtering out messages above
// threshold, timestamped from the host clock.
func New(writeTo io.WriteCloser, threshold Level) *Logger {
	return NewWithClock(writeTo, threshold, clock.SystemClock{})
}

// NewWithClock is like New but lets a test supply a deterministic clock
// for message timestamps and periodic-logger scheduling, the same pattern
// reassemble.NewWithClock uses.
func NewWithClock(writeTo io.WriteCloser, threshold Level, c clock.Clock) *Logger {
	l := &Logger{
		p:         newPeriodic(),
		writeTo:   writeTo,
		Threshold: threshold,
		clock:     c,
	}
	go periodicRunner(l)
	return l
}

// Close stops the periodic runner and closes the underlying writer.
func (l *Logger) Close() {
	l.writeLock.Lock()
	l.p.Close()
	_ = l.writeTo.Close()
	l.writeTo = nil
	l.writeLock.Unlock()
}

func (l *Logger) prefixMessage(level Level) {
	if level != Debug {
		fmt.Fprint(l.writeTo, l.clock.Now().Format("2006-01-02 15:04:05: "))
	}
	switch level {
	case Warning:
		fmt.Fprint(l.writeTo, "WARNING: ")
	case Error:
		fmt.Fprint(l.writeTo, "ERROR: ")
	case Fatal:
		fmt.Fprint(l.writeTo, "FATAL: ")
	}
}

// Compose returns a Composer that holds the write lock across several
// writes, so a multi-part message can't be interleaved with another
// goroutine's message. Call Close or Finish to release it.
func (l *Logger) Compose(level Level) Composer {
	if level > l.Threshold {
		return Composer{}
	}
	l.writeLock.Lock()
	l.prefixMessage(level)
	return Composer{
		writeTo:  l.writeTo,
		heldLock: &l.writeLock,
		fatal:    level == Fatal,
	}
}

// Log writes a formatted message if level passes the logger's threshold.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	if level > l.Threshold {
		return
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	l.prefixMessage(level)
	if len(args) == 0 {
		fmt.Fprintln(l.writeTo, format)
	} else {
		fmt.Fprintf(l.writeTo, format, args...)
		fmt.Fprintln(l.writeTo)
	}
	if level == Fatal {
		os.Exit(fatalExitCode)
	}
}

// Debug prints possibly-interesting information; never filtered out.
func (l *Logger) Debug(format string, args ...interface{}) { l.Log(Debug, format, args...) }

// Info prints unimportant but noteworthy information.
func (l *Logger) Info(format string, args ...interface{}) { l.Log(Info, format, args...) }

// Warning prints an error that might be recovered from.
func (l *Logger) Warning(format string, args ...interface{}) { l.Log(Warning, format, args...) }

// Error prints a non-fatal but permanent error.
func (l *Logger) Error(format string, args ...interface{}) { l.Log(Error, format, args...) }

// Fatal prints an error and exits the process.
func (l *Logger) Fatal(format string, args ...interface{}) { l.Log(Fatal, format, args...) }

// Composer lets a caller split one logical message into several writes.
type Composer struct {
	fatal    bool
	writeTo  io.Writer // nil if the level was filtered out
	heldLock *sync.Mutex
}

// Write writes formatted text with no trailing newline.
func (c *Composer) Write(format string, args ...interface{}) {
	if c.writeTo == nil {
		return
	}
	if len(args) == 0 {
		fmt.Fprint(c.writeTo, format)
	} else {
		fmt.Fprintf(c.writeTo, format, args...)
	}
}

// Writeln writes formatted text plus a trailing newline.
func (c *Composer) Writeln(format string, args ...interface{}) {
	if c.writeTo == nil {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(c.writeTo, format)
	} else {
		fmt.Fprintf(c.writeTo, format, args...)
		fmt.Fprintln(c.writeTo)
	}
}

// Finish writes a final line and closes the Composer.
func (c *Composer) Finish(format string, args ...interface{}) {
	c.Writeln(format, args...)
	c.Close()
}

// Close releases the Logger's write lock, exiting the process first if
// this Composer was opened at Fatal level.
func (c *Composer) Close() {
	if c.writeTo == nil {
		return
	}
	c.heldLock.Unlock()
	c.writeTo = nil
	if c.fatal {
		os.Exit(fatalExitCode)
	}
}

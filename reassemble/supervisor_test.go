package reassemble

import (
	"testing"
	"time"

	"github.com/tormol/aislib/clock"
	"github.com/tormol/aislib/nmea"
)

func TestSupervisorSweepsExpiredGroups(t *testing.T) {
	r := NewWithClock(Config{Timeout: 10 * time.Millisecond, MaxGroups: DefaultMaxGroups}, clock.SystemClock{})
	first, _ := twoFragmentPayloads()
	_, _ = r.AddFragment(1, 2, "g", nmea.ChannelA, first, 0)

	swept := make(chan int, 8)
	sup := StartSupervisor(r, SupervisorConfig{
		MinInterval: 20 * time.Millisecond,
		MaxInterval: 20 * time.Millisecond,
		OnSwept:     func(removed int) { swept <- removed },
	})
	defer sup.Stop()

	select {
	case removed := <-swept:
		if removed != 1 {
			t.Errorf("first sweep removed %d groups, want 1", removed)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the supervisor's first sweep")
	}
}

func TestSupervisorStopsWithDefaultConfig(t *testing.T) {
	r := New(DefaultConfig())
	sup := StartSupervisor(r, SupervisorConfig{})
	sup.Stop()
}

package reassemble

import (
	"testing"
	"time"

	"github.com/tormol/aislib/clock"
	"github.com/tormol/aislib/nmea"
)

// Two fragments that together carry the 424-bit static/voyage data message
// for "MULTI PART TEST VESSEL" are not easy to hand-encode here without
// depending on aismsg, so these tests exercise the reassembler's
// bit-buffer-level contract directly with synthetic payloads, and check
// bit-for-bit equality of the combined buffer rather than decoding it.

func twoFragmentPayloads() (first, second string) {
	// 12 armor chars (72 bits) then 12 more (72 bits) with 2 fill bits on
	// the last sentence, chosen so the two halves decode to different bit
	// patterns and a byte-for-byte comparison catches ordering mistakes.
	return "111111111111", "222222222220"
}

func TestInOrder(t *testing.T) {
	first, second := twoFragmentPayloads()
	r := New(DefaultConfig())
	got, err := r.AddFragment(1, 2, "2", nmea.ChannelA, first, 0)
	if err != nil || got != nil {
		t.Fatalf("fragment 1: got=%v err=%v, want nil,nil", got, err)
	}
	got, err = r.AddFragment(2, 2, "2", nmea.ChannelA, second, 2)
	if err != nil {
		t.Fatalf("fragment 2: %v", err)
	}
	if got == nil {
		t.Fatal("fragment 2 should have completed the group")
	}
	if r.GroupCount() != 0 {
		t.Errorf("group should be removed after completion, count=%d", r.GroupCount())
	}
}

func TestOutOfOrderMatchesInOrder(t *testing.T) {
	first, second := twoFragmentPayloads()

	inOrder := New(DefaultConfig())
	_, _ = inOrder.AddFragment(1, 2, "2", nmea.ChannelA, first, 0)
	want, err := inOrder.AddFragment(2, 2, "2", nmea.ChannelA, second, 2)
	if err != nil || want == nil {
		t.Fatalf("in-order combine failed: %v", err)
	}

	outOfOrder := New(DefaultConfig())
	got1, err := outOfOrder.AddFragment(2, 2, "2", nmea.ChannelA, second, 2)
	if err != nil || got1 != nil {
		t.Fatalf("submitting fragment 2 first should not complete the group: %v, %v", got1, err)
	}
	got, err := outOfOrder.AddFragment(1, 2, "2", nmea.ChannelA, first, 0)
	if err != nil || got == nil {
		t.Fatalf("out-of-order combine failed: %v", err)
	}

	if want.Size() != got.Size() {
		t.Fatalf("size mismatch: in-order=%d out-of-order=%d", want.Size(), got.Size())
	}
	for i := 0; i < want.Size(); i++ {
		wb, _ := want.GetBit(i)
		gb, _ := got.GetBit(i)
		if wb != gb {
			t.Fatalf("bit %d differs between arrival orders", i)
		}
	}
}

func TestDuplicateFragmentIsNoOp(t *testing.T) {
	fc := clock.NewFake(time.Unix(1000, 0))
	r := NewWithClock(DefaultConfig(), fc)
	first, second := twoFragmentPayloads()

	_, _ = r.AddFragment(1, 2, "g", nmea.ChannelA, first, 0)
	firstUpdate := fc.Now()
	fc.Advance(30 * time.Second)
	got, err := r.AddFragment(1, 2, "g", nmea.ChannelA, "000000000000", 0) // duplicate, different content
	if err != nil {
		t.Fatalf("duplicate submission should not error: %v", err)
	}
	if got != nil {
		t.Fatal("duplicate submission should not complete the group")
	}
	// Completing the group now and checking its content wasn't replaced
	// proves the duplicate didn't overwrite slot 1: bit 5 is the low bit of
	// the first armor char, 1 for '1' and 0 for the duplicate's '0'.
	combined, err := r.AddFragment(2, 2, "g", nmea.ChannelA, second, 2)
	if err != nil || combined == nil {
		t.Fatalf("fragment 2 should complete the group: %v", err)
	}
	bit, _ := combined.GetBit(5)
	if !bit {
		t.Error("slot 1 content was overwritten by the duplicate submission")
	}
	_ = firstUpdate
}

func TestDuplicateDoesNotExtendTimeout(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	r := NewWithClock(Config{Timeout: 10 * time.Second, MaxGroups: DefaultMaxGroups}, fc)
	first, _ := twoFragmentPayloads()

	_, _ = r.AddFragment(1, 2, "g", nmea.ChannelA, first, 0)
	fc.Advance(9 * time.Second)
	_, _ = r.AddFragment(1, 2, "g", nmea.ChannelA, first, 0) // duplicate
	fc.Advance(2 * time.Second)                              // total 11s since the real update

	removed := r.CleanupExpired()
	if removed != 1 {
		t.Errorf("group should have expired (duplicate must not reset the clock), removed=%d", removed)
	}
}

func TestGroupIsolationByGroupIDAndChannel(t *testing.T) {
	r := New(DefaultConfig())
	first, second := twoFragmentPayloads()

	_, _ = r.AddFragment(1, 2, "1", nmea.ChannelA, first, 0)
	_, _ = r.AddFragment(1, 2, "1", nmea.ChannelB, first, 0)
	_, _ = r.AddFragment(1, 2, "2", nmea.ChannelA, first, 0)
	if r.GroupCount() != 3 {
		t.Fatalf("expected 3 isolated groups, got %d", r.GroupCount())
	}
	got, err := r.AddFragment(2, 2, "1", nmea.ChannelA, second, 2)
	if err != nil || got == nil {
		t.Fatalf("completing group (1,A) failed: %v", err)
	}
	if r.GroupCount() != 2 {
		t.Errorf("only the completed group should be removed, remaining=%d", r.GroupCount())
	}
}

func TestTimeoutSweep(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	r := NewWithClock(Config{Timeout: 1 * time.Second, MaxGroups: DefaultMaxGroups}, fc)
	first, _ := twoFragmentPayloads()

	_, _ = r.AddFragment(1, 2, "g", nmea.ChannelA, first, 0)
	fc.Advance(2 * time.Second)
	if removed := r.CleanupExpired(); removed != 1 {
		t.Fatalf("expected 1 expired group, got %d", removed)
	}
	if r.GroupCount() != 0 {
		t.Errorf("group count after sweep = %d, want 0", r.GroupCount())
	}

	// A fresh fragment 2 now starts a brand new group of count 1.
	_, _ = r.AddFragment(2, 2, "g", nmea.ChannelA, first, 0)
	if r.GroupCount() != 1 {
		t.Errorf("group count after new fragment = %d, want 1", r.GroupCount())
	}
}

func TestCapacityEviction(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	r := NewWithClock(Config{Timeout: DefaultTimeout, MaxGroups: 2}, fc)
	first, _ := twoFragmentPayloads()

	_, _ = r.AddFragment(1, 2, "a", nmea.ChannelA, first, 0)
	fc.Advance(time.Second)
	_, _ = r.AddFragment(1, 2, "b", nmea.ChannelA, first, 0)
	fc.Advance(time.Second)
	_, _ = r.AddFragment(1, 2, "c", nmea.ChannelA, first, 0)

	if r.GroupCount() != 2 {
		t.Fatalf("group count = %d, want 2", r.GroupCount())
	}
	if _, ok := r.groups[Key{GroupID: "a", Channel: nmea.ChannelA}]; ok {
		t.Error("oldest group 'a' should have been evicted")
	}
}

func TestEmptyGroupIDRejectedForMultipart(t *testing.T) {
	first, _ := twoFragmentPayloads()
	r := New(DefaultConfig())
	if _, err := r.AddFragment(1, 2, "", nmea.ChannelA, first, 0); err == nil {
		t.Error("empty group-id on a multi-fragment submission should be rejected")
	}
}

func TestSingleFragmentBypassesReassembler(t *testing.T) {
	r := New(DefaultConfig())
	got, err := r.AddFragment(1, 1, "", nmea.ChannelA, "111111", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("single-fragment submission should decode immediately")
	}
	if r.GroupCount() != 0 {
		t.Errorf("single-fragment submission should not create group state, count=%d", r.GroupCount())
	}
}

func TestBadFragmentInfoRejected(t *testing.T) {
	r := New(DefaultConfig())
	if _, err := r.AddFragment(3, 2, "a", nmea.ChannelA, "111111", 0); err == nil {
		t.Error("fragment-number > fragment-count should be rejected")
	}
	if _, err := r.AddFragment(1, 2, "a", nmea.Channel('Z'), "111111", 0); err == nil {
		t.Error("bad channel should be rejected")
	}
	if _, err := r.AddFragment(1, 2, "a", nmea.ChannelA, "111111", 6); err == nil {
		t.Error("fill-bits out of [0,5] should be rejected")
	}
}

package bitvector

import "testing"

func TestAppendGetUintRoundTrip(t *testing.T) {
	widths := []int{1, 2, 3, 6, 7, 8, 9, 13, 27, 28, 30, 32, 40, 63, 64}
	for _, n := range widths {
		b := New(0)
		max := maskOf(n)
		values := []uint64{0, 1, max, max / 2, max / 3}
		offsets := make([]int, len(values))
		for idx, v := range values {
			offsets[idx] = b.Size()
			if err := b.AppendUint(v, n); err != nil {
				t.Fatalf("n=%d v=%d: AppendUint: %v", n, v, err)
			}
		}
		for idx, v := range values {
			got, err := b.GetUint(offsets[idx], n)
			if err != nil {
				t.Fatalf("n=%d v=%d: GetUint: %v", n, v, err)
			}
			if got != v {
				t.Errorf("n=%d: put %d, got %d", n, v, got)
			}
		}
	}
}

func TestAppendGetIntRoundTrip(t *testing.T) {
	widths := []int{1, 2, 8, 9, 27, 28, 32, 64}
	for _, n := range widths {
		lo := -(int64(1) << uint(n-1))
		hi := (int64(1) << uint(n-1)) - 1
		values := []int64{lo, hi, 0, -1, 1}
		if n == 1 {
			values = []int64{lo, hi}
		}
		b := New(0)
		offsets := make([]int, len(values))
		for idx, v := range values {
			offsets[idx] = b.Size()
			if err := b.AppendInt(v, n); err != nil {
				t.Fatalf("n=%d v=%d: AppendInt: %v", n, v, err)
			}
		}
		for idx, v := range values {
			got, err := b.GetInt(offsets[idx], n)
			if err != nil {
				t.Fatalf("n=%d v=%d: GetInt: %v", n, v, err)
			}
			if got != v {
				t.Errorf("n=%d: put %d, got %d", n, v, got)
			}
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []struct {
		s    string
		bits int
		want string
	}{
		{"TEST", 24, "TEST"},
		{"AB", 18, "AB "},
		{"", 6, " "},
		{"HELLO WORLD", 6 * 11, "HELLO WORLD"},
	}
	for _, c := range cases {
		b := New(0)
		if err := b.AppendString(c.s, c.bits); err != nil {
			t.Fatalf("%q: AppendString: %v", c.s, err)
		}
		got, err := b.GetString(0, c.bits)
		if err != nil {
			t.Fatalf("%q: GetString: %v", c.s, err)
		}
		if got != c.want {
			t.Errorf("%q into %d bits: got %q, want %q", c.s, c.bits, got, c.want)
		}
	}
}

func TestAppendStringPadsWithSpace(t *testing.T) {
	b := New(0)
	if err := b.AppendString("AB", 18); err != nil {
		t.Fatal(err)
	}
	last, err := b.GetUint(12, 6)
	if err != nil {
		t.Fatal(err)
	}
	if last != 32 {
		t.Errorf("padding group = %d, want 32 (space)", last)
	}
}

func TestAppendStringTooLong(t *testing.T) {
	b := New(0)
	if err := b.AppendString("TOOLONG", 6*3); err == nil {
		t.Error("expected BadWidthError for string longer than allocated width")
	}
}

func TestGetStringSuppressesAt(t *testing.T) {
	b := New(0)
	_ = b.AppendUint(0, 6)  // '@'
	_ = b.AppendUint(1, 6)  // 'A'
	_ = b.AppendUint(0, 6)  // '@'
	got, err := b.GetString(0, 18)
	if err != nil {
		t.Fatal(err)
	}
	if got != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestNMEAPayloadRoundTrip(t *testing.T) {
	b := New(0)
	_ = b.AppendUint(0x15, 6)
	_ = b.AppendUint(0x3F, 6)
	_ = b.AppendUint(0x00, 6)
	_ = b.AppendUint(0x1, 3) // leaves 3 fill bits in the last armor char

	payload, fill := b.ToNMEAPayload()
	if fill != 3 {
		t.Fatalf("fill = %d, want 3", fill)
	}
	back, err := FromNMEAPayload(payload)
	if err != nil {
		t.Fatal(err)
	}
	if back.Size() != 24 {
		t.Fatalf("decoded size = %d, want 24 (4 armor chars * 6)", back.Size())
	}
	for i := 0; i < b.Size(); i++ {
		wantBit, _ := b.GetBit(i)
		gotBit, _ := back.GetBit(i)
		if wantBit != gotBit {
			t.Fatalf("bit %d: got %v, want %v", i, gotBit, wantBit)
		}
	}
	for i := b.Size(); i < back.Size(); i++ {
		bit, _ := back.GetBit(i)
		if bit {
			t.Errorf("fill bit %d should be zero", i)
		}
	}
}

func TestArmorCharMapping(t *testing.T) {
	cases := []struct {
		raw  byte
		char byte
	}{
		{0, '0'}, {39, 'W'}, {40, '`'}, {63, 'w'},
	}
	for _, c := range cases {
		if got := armorChar(c.raw); got != c.char {
			t.Errorf("armorChar(%d) = %q, want %q", c.raw, got, c.char)
		}
	}
}

func TestFromNMEAPayloadRejectsBadChar(t *testing.T) {
	if _, err := FromNMEAPayload("15MgK4X"); err == nil {
		t.Error("expected error for armor character in the 'X'..'_' gap")
	}
}

func TestOutOfRange(t *testing.T) {
	b := New(0)
	_ = b.AppendUint(1, 8)
	if _, err := b.GetUint(4, 8); err == nil {
		t.Error("expected OutOfRangeError reading past the end")
	}
	if _, err := b.GetBit(100); err == nil {
		t.Error("expected OutOfRangeError for GetBit")
	}
}

func TestBadWidth(t *testing.T) {
	b := New(0)
	if err := b.AppendUint(1, 0); err == nil {
		t.Error("expected BadWidthError for n=0")
	}
	if err := b.AppendUint(1, 65); err == nil {
		t.Error("expected BadWidthError for n=65")
	}
	if err := b.AppendString("x", 7); err == nil {
		t.Error("expected BadWidthError for width not a multiple of 6")
	}
}

func TestTruncationIsSilent(t *testing.T) {
	b := New(0)
	if err := b.AppendUint(0x1FF, 4); err != nil { // 9 bits of value into 4 bits
		t.Fatalf("AppendUint should truncate, not fail: %v", err)
	}
	got, _ := b.GetUint(0, 4)
	if got != 0xF {
		t.Errorf("got %d, want low 4 bits (0xF)", got)
	}
}

func TestHexAndBinaryRendering(t *testing.T) {
	b := New(0)
	_ = b.AppendUint(0xA5, 8)
	if got := b.ToHex(); got != "a5" {
		t.Errorf("ToHex() = %q, want %q", got, "a5")
	}
	if got := b.ToHexUpper(); got != "A5" {
		t.Errorf("ToHexUpper() = %q, want %q", got, "A5")
	}
	if got := b.ToBinary(); got != "10100101" {
		t.Errorf("ToBinary() = %q, want %q", got, "10100101")
	}
}

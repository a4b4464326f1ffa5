package logger

import "testing"

func TestEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{"a\r\nb", "a\\r\\nb"},
		{string([]byte{'a', 0, 'b'}), "a\\0b"},
	}
	for _, c := range cases {
		if got := Escape([]byte(c.in)); got != c.want {
			t.Errorf("Escape(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSiMultiple(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "2K"},
		{1000000, "1M"},
	}
	for _, c := range cases {
		if got := SiMultiple(c.n, 1000, 'Y'); got != c.want {
			t.Errorf("SiMultiple(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

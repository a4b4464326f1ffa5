package logger

// Helpers for formatting values for logging; unrelated to Logger itself.
import (
	"strconv"
	"time"
)

// Escape escapes CR, LF and NUL in a (possibly multi-line) NMEA sentence
// so it prints on one line in debug output.
func Escape(b []byte) string {
	s := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case '\r':
			s = append(s, '\\', 'r')
		case '\n':
			s = append(s, '\\', 'n')
		case 0:
			s = append(s, '\\', '0')
		default:
			s = append(s, c)
		}
	}
	return string(s)
}

// SiMultiple rounds n down to the nearest Kilo/Mega/Giga/... and appends
// the unit letter. multipleOf is usually 1000 or 1024.
func SiMultiple(n, multipleOf uint64, maxUnit byte) string {
	var steps, rem uint64
	units := " KMGTPEZY"
	for n >= multipleOf && units[steps] != maxUnit {
		rem = n % multipleOf
		n /= multipleOf
		steps++
	}
	if rem%multipleOf >= multipleOf/2 {
		n++
	}
	s := strconv.FormatUint(n, 10)
	if steps > 0 {
		s += units[steps : steps+1]
	}
	return s
}

// RoundDuration drops precision below `to` for nicer log output.
func RoundDuration(d, to time.Duration) string {
	d -= d % to
	return d.String()
}

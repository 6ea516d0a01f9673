// Package logtime decodes the combat log's "MM/DD/YYYY HH:MM:SS.mmmm"
// timestamp text into a fractional-second scalar. The scalar need not be a
// real calendar second — only monotone non-decreasing within one log file,
// so that subtracting two decoded values yields a correct duration (§4.2).
package logtime

import (
	"fmt"
	"strconv"
)

// Decode parses text of the form "MM/DD/YYYY HH:MM:SS.mmmm" (the fractional
// part may have 1-4 digits, or be absent). ok is false when the text cannot
// be parsed as that shape at all; callers should treat that as a dropped
// line rather than aborting the parse.
func Decode(text string) (seconds float64, ok bool) {
	// Split "MM/DD/YYYY HH:MM:SS.mmmm" -> date, time.
	sp := indexByte(text, ' ')
	if sp < 0 {
		return 0, false
	}
	datePart := text[:sp]
	timePart := text[sp+1:]

	month, day, year, ok := splitDate(datePart)
	if !ok {
		return 0, false
	}
	hour, minute, sec, frac, ok := splitTime(timePart)
	if !ok {
		return 0, false
	}

	days := float64(year)*366 + float64(month)*31 + float64(day)
	total := days*86400 + float64(hour)*3600 + float64(minute)*60 + float64(sec) + frac
	return total, true
}

// Format renders a decoded value back into a wall-clock-shaped string for
// display (encounter start/end times, death timestamps). Since Decode's
// scalar is only guaranteed monotone rather than calendar-accurate, Format
// reports time-of-day modulo one day plus an elapsed-day counter rather than
// reconstructing the original MM/DD/YYYY.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := int64(seconds / 86400)
	rem := seconds - float64(days)*86400
	hour := int(rem / 3600)
	rem -= float64(hour) * 3600
	minute := int(rem / 60)
	rem -= float64(minute) * 60
	sec := int(rem)
	ms := int((rem - float64(sec)) * 1000)
	if days > 0 {
		return fmt.Sprintf("d%d %02d:%02d:%02d.%03d", days, hour, minute, sec, ms)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hour, minute, sec, ms)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// splitDate parses "MM/DD/YYYY".
func splitDate(s string) (month, day, year int, ok bool) {
	parts := splitN(s, '/', 3)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	month = atoiOrZero(parts[0])
	day = atoiOrZero(parts[1])
	year = atoiOrZero(parts[2])
	return month, day, year, true
}

// splitTime parses "HH:MM:SS.mmmm", with the fractional part optional.
func splitTime(s string) (hour, minute, sec int, frac float64, ok bool) {
	dot := indexByte(s, '.')
	clock := s
	fracPart := ""
	if dot >= 0 {
		clock = s[:dot]
		fracPart = s[dot+1:]
	}
	parts := splitN(clock, ':', 3)
	if len(parts) != 3 {
		return 0, 0, 0, 0, false
	}
	hour = atoiOrZero(parts[0])
	minute = atoiOrZero(parts[1])
	sec = atoiOrZero(parts[2])
	if fracPart != "" {
		// Up to 4 trailing digits; pad/truncate semantics follow directly
		// from treating the text as N digits after the decimal point.
		if len(fracPart) > 4 {
			fracPart = fracPart[:4]
		}
		n := atoiOrZero(fracPart)
		div := 1.0
		for i := 0; i < len(fracPart); i++ {
			div *= 10
		}
		frac = float64(n) / div
	}
	return hour, minute, sec, frac, true
}

func splitN(s string, sep byte, n int) []string {
	var out []string
	start := 0
	for i := 0; i < len(s) && len(out) < n-1; i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// atoiOrZero parses s as a decimal integer; malformed text yields 0
// rather than propagating an error, per §4.1's "malformed numeric fields
// parse as 0" policy, which this package follows for its own sub-fields.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package logdriver

import (
	"strconv"
	"strings"

	"github.com/wowlog/combatlog/internal/tokenizer"
)

const maxPlausibleAmount = 1e8

// field returns fields[idx] or "" when idx is out of range — the combat log
// schema drifts across client versions and a short field list should never
// panic the parser (§4.5: malformed events are individually dropped, the
// parser never aborts mid-file).
func field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func name(fields []string, idx int) string {
	return tokenizer.Unquote(field(fields, idx))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atoi64(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// findAmount implements the dynamic field-offset probe from §4.4/§9: the
// nominal amount offset may be off by ±1 or ±2 across log schema versions,
// so candidates at [off, off-1, off+1, off-2, off+2] are tried in that
// order and the first that parses as a non-negative integer under 1e8 wins.
// This is a first-class, retained policy — not a one-off hack for a single
// observed log version.
func findAmount(fields []string, nominalOffset int) (amount int64, idx int, ok bool) {
	for _, delta := range []int{0, -1, 1, -2, 2} {
		i := nominalOffset + delta
		s := field(fields, i)
		if s == "" {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil || n < 0 || n >= maxPlausibleAmount {
			continue
		}
		return n, i, true
	}
	return 0, nominalOffset, false
}

// bracketList parses a bracketed, comma-separated list of integers such as
// "[9,10]", returned as-is (with brackets) by the tokenizer since brackets
// are not stripped like quotes.
func bracketList(s string) []int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		out = append(out, atoi(p))
	}
	return out
}

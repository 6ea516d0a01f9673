// Package tokenizer splits a raw combat log line into its timestamp text
// and a comma-separated field vector, honouring quoted strings and
// bracket/paren-depth so that commas inside (1,2,3) or ["a","b"] don't
// split a field. There is no regexp or CSV package involved: the combat
// log's quoting rule (quote-to-next-quote, not quote-with-escaping) and its
// bracket-depth rule aren't expressible with either.
package tokenizer

import "strings"

// Tokenize splits line on its first two-space separator into a timestamp
// string and a payload, then splits the payload into fields. ok is false
// when line has no two-space separator (§4.1: such lines are silently
// skipped by the caller).
func Tokenize(line string) (timestamp string, fields []string, ok bool) {
	sep := strings.Index(line, "  ")
	if sep < 0 {
		return "", nil, false
	}
	timestamp = line[:sep]
	payload := line[sep+2:]
	return timestamp, splitFields(payload), true
}

// splitFields parses payload into top-level comma-separated fields, where
// "top-level" means bracket/paren depth zero or below (an unmatched closing
// bracket does not hide the commas after it). A field beginning with a
// quote extends verbatim to the next quote (inclusive of both quotes); a
// trailing comma after a field is consumed.
func splitFields(payload string) []string {
	var fields []string
	i, n := 0, len(payload)
	for i < n {
		for i < n && payload[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}
		if payload[i] == '"' {
			j := i + 1
			for j < n && payload[j] != '"' {
				j++
			}
			if j < n {
				j++ // include closing quote
			}
			fields = append(fields, payload[i:j])
			i = j
		} else {
			depth := 0
			j := i
			for j < n {
				switch payload[j] {
				case '(', '[':
					depth++
				case ')', ']':
					depth--
				case ',':
					if depth <= 0 {
						goto done
					}
				}
				j++
			}
		done:
			fields = append(fields, payload[i:j])
			i = j
		}
		if i < n && payload[i] == ',' {
			i++
		}
	}
	return fields
}

// Unquote strips a single pair of surrounding double quotes, if present.
// Used for name-bearing fields where the caller has explicitly requested
// unquoting; numeric fields are left exactly as tokenized.
func Unquote(field string) string {
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		return field[1 : len(field)-1]
	}
	return field
}

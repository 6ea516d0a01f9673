package model

import gojson "github.com/goccy/go-json"

// marshalJSON is the single indirection point to goccy/go-json so the rest
// of the package doesn't need to know which encoder backs MarshalSummary.
func marshalJSON(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

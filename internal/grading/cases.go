package grading

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
)

var ErrMalformedTestCases = errors.New("malformed test cases")

// TestCase is the typed form of an exercise's stored test data. Input and
// Expected stay as raw JSON so string, numeric and structured exercises all
// fit the same shape.
type TestCase struct {
	Input    json.RawMessage `json:"input"`
	Expected json.RawMessage `json:"expected"`
}

// ParseTestCases decodes admin-authored test data at the boundary. Anything
// that is not a non-empty array of {input, expected} objects is rejected;
// untyped blobs never reach comparison logic.
func ParseTestCases(raw []byte) ([]TestCase, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrMalformedTestCases
	}

	var cases []TestCase
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cases); err != nil {
		return nil, ErrMalformedTestCases
	}
	if len(cases) == 0 {
		return nil, ErrMalformedTestCases
	}
	for _, c := range cases {
		if len(c.Input) == 0 || len(c.Expected) == 0 {
			return nil, ErrMalformedTestCases
		}
	}
	return cases, nil
}

// valuesEqual compares two JSON documents by value: 5 equals 5.0, object key
// order is irrelevant, and string comparison ignores surrounding whitespace
// in runner output.
func valuesEqual(expected, actual json.RawMessage) bool {
	var ev, av interface{}
	if err := json.Unmarshal(expected, &ev); err != nil {
		return false
	}
	if err := json.Unmarshal(actual, &av); err != nil {
		// Runner output that is not valid JSON still matches a string
		// expectation verbatim (modulo trailing newline).
		if es, ok := ev.(string); ok {
			return es == strings.TrimSpace(string(actual))
		}
		return false
	}
	return reflect.DeepEqual(ev, av)
}

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

type object = map[string]any

// shape identifies which recognized raw layout carried the report.
type shape int

const (
	shapeNested   shape = iota + 1 // {"financial_advisory_report": {...}}
	shapeAdvisory                  // {"financial_advisory": {...}}
	shapeLegacy                    // {"advisory_report": {...}}
	shapeFlat                      // report fields at the top level
)

func (s shape) String() string {
	switch s {
	case shapeNested:
		return "financial_advisory_report"
	case shapeAdvisory:
		return "financial_advisory"
	case shapeLegacy:
		return "advisory_report"
	case shapeFlat:
		return "flat"
	}

	return "unknown"
}

// wrappers lists the envelope keys in priority order.
var wrappers = []struct {
	key   string
	shape shape
}{
	{"financial_advisory_report", shapeNested},
	{"financial_advisory", shapeAdvisory},
	{"advisory_report", shapeLegacy},
}

// maxSearchDepth bounds the nested-envelope search.
const maxSearchDepth = 4

// Normalize decodes payload and returns the normalized report.
// All failures wrap ErrNoReport; Normalize never panics on malformed input.
func Normalize(payload []byte) (*Report, error) {
	v, err := decode(payload)
	if err != nil {
		return nil, err
	}

	return NormalizeValue(v)
}

// NormalizeValue normalizes an already decoded JSON value.
func NormalizeValue(v any) (*Report, error) {
	if s, ok := v.(string); ok {
		decoded, err := decodeAnswer(s)
		if err != nil {
			return nil, err
		}

		v = decoded
	}

	if obj, ok := v.(object); ok {
		if answer, ok := obj["answer"].(string); ok {
			decoded, err := decodeAnswer(answer)
			if err != nil {
				return nil, err
			}

			v = decoded
		}
	}

	raw, _, ok := locate(v)
	if !ok {
		return nil, fmt.Errorf("%w: no report-shaped object found", ErrNoReport)
	}

	return build(raw), nil
}

func decode(payload []byte) (any, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrNoReport)
	}

	v, err := parseJSON(trimmed)
	if err != nil {
		// A bare markdown answer that was never wrapped in JSON.
		return decodeAnswer(string(trimmed))
	}

	return v, nil
}

func parseJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}

	return v, nil
}

var fenceTag = regexp.MustCompile("^[A-Za-z][A-Za-z0-9_+-]*")

// unfence strips an opening code fence (with or without a language tag) and
// the closing fence. Text without a fence is returned trimmed.
func unfence(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return strings.TrimSpace(s)
	}

	body := s[start+3:]
	body = body[len(fenceTag.FindString(body)):]

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}

	return strings.TrimSpace(body)
}

func decodeAnswer(answer string) (any, error) {
	body := unfence(answer)
	if body == "" {
		return nil, fmt.Errorf("%w: empty answer", ErrNoReport)
	}

	v, err := parseJSON([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing answer: %v", ErrNoReport, err)
	}

	return v, nil
}

// locate finds the report object inside the decoded payload.
func locate(v any) (object, shape, bool) {
	root, ok := v.(object)
	if !ok {
		return nil, 0, false
	}

	for _, w := range wrappers {
		if found, ok := findKey(root, w.key); ok {
			return found, w.shape, true
		}
	}

	if looksLikeReport(root) {
		return root, shapeFlat, true
	}

	return nil, 0, false
}

// findKey searches breadth-first for an object-valued key. Children are
// visited in sorted key order so the result does not depend on map iteration.
func findKey(root object, key string) (object, bool) {
	level := []object{root}

	for depth := 0; depth <= maxSearchDepth && len(level) > 0; depth++ {
		var next []object

		for _, obj := range level {
			if found, ok := obj[key].(object); ok {
				return found, true
			}

			for _, k := range slices.Sorted(maps.Keys(obj)) {
				switch child := obj[k].(type) {
				case object:
					next = append(next, child)
				case []any:
					for _, item := range child {
						if o, ok := item.(object); ok {
							next = append(next, o)
						}
					}
				}
			}
		}

		level = next
	}

	return nil, false
}

func looksLikeReport(obj object) bool {
	for _, k := range reportMarkers {
		if _, ok := obj[k]; ok {
			return true
		}
	}

	return false
}

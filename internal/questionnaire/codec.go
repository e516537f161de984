package questionnaire

import (
	"encoding/json"
	"strings"
)

// Answer values are stored as strings for every question type; multi-select
// questions serialize their selected options as a JSON array string so the
// answer map stays homogeneously string-typed. Decoding is an ordered list
// of fallback strategies: strict JSON first, the legacy comma format for
// input that never was JSON, and an empty result for anything malformed.
// Decoders never return an error; one corrupt record must not block the
// rest of the form.

// looksLikeJSON reports whether a raw answer was written by the JSON
// encoder. Such input gets no comma fallback: if it fails to parse it is
// corrupt, not legacy.
func looksLikeJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{")
}

// splitLegacy parses the pre-JSON comma-separated storage format: split on
// commas, trim each token, drop empties.
func splitLegacy(s string) []string {
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// DecodeMultiValue parses a stored multi-select answer into the selected
// option strings. Always returns a non-nil slice.
func DecodeMultiValue(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	if looksLikeJSON(raw) {
		var values []string
		if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
			return []string{}
		}
		return values
	}
	return splitLegacy(raw)
}

// EncodeMultiValue serializes selected options for storage in the answer
// map.
func EncodeMultiValue(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// ToggleOption adds or removes a single option in a stored multi-select
// answer and re-encodes the whole set. The current value is decoded, a new
// slice is built and serialized; the decoded slice is never mutated in
// place.
func ToggleOption(raw, option string, selected bool) string {
	current := DecodeMultiValue(raw)

	next := make([]string, 0, len(current)+1)
	for _, v := range current {
		if v != option {
			next = append(next, v)
		}
	}
	if selected {
		next = append(next, option)
	}
	return EncodeMultiValue(next)
}

// DecodeOptions parses a stored options column into an option list. Options
// normally arrive as a JSON array, but older records hold the array
// JSON-encoded inside a string, and the oldest hold a comma-separated
// string; all three decode, anything else yields nil.
func DecodeOptions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var options []string
	if err := json.Unmarshal(raw, &options); err == nil {
		return options
	}
	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if values := DecodeMultiValue(nested); len(values) > 0 {
			return values
		}
	}
	return nil
}

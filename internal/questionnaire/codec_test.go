package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiValueRoundTrip(t *testing.T) {
	encoded := EncodeMultiValue([]string{"Forest", "Wetland"})
	assert.Equal(t, `["Forest","Wetland"]`, encoded)
	assert.Equal(t, []string{"Forest", "Wetland"}, DecodeMultiValue(encoded))
}

func TestDecodeMultiValueLegacyCommaFormat(t *testing.T) {
	assert.Equal(t, []string{"Forest", "Wetland"}, DecodeMultiValue("Forest, Wetland"))
	assert.Equal(t, []string{"Forest"}, DecodeMultiValue("Forest"))
	assert.Equal(t, []string{"a", "b"}, DecodeMultiValue(" a ,, b , "))
}

func TestDecodeMultiValueMalformedInput(t *testing.T) {
	assert.Equal(t, []string{}, DecodeMultiValue("{bad"))
	assert.Equal(t, []string{}, DecodeMultiValue("[1,2"))
	assert.Equal(t, []string{}, DecodeMultiValue(""))
	assert.Equal(t, []string{}, DecodeMultiValue("   "))
	// A JSON array of the wrong element type is corrupt, not legacy.
	assert.Equal(t, []string{}, DecodeMultiValue("[1,2]"))
}

func TestEncodeMultiValueNil(t *testing.T) {
	assert.Equal(t, "[]", EncodeMultiValue(nil))
}

func TestToggleOption(t *testing.T) {
	v := ToggleOption("", "Forest", true)
	assert.Equal(t, `["Forest"]`, v)

	v = ToggleOption(v, "Wetland", true)
	assert.Equal(t, `["Forest","Wetland"]`, v)

	// Re-checking an already selected option does not duplicate it.
	v = ToggleOption(v, "Forest", true)
	assert.Equal(t, []string{"Wetland", "Forest"}, DecodeMultiValue(v))

	v = ToggleOption(v, "Wetland", false)
	assert.Equal(t, `["Forest"]`, v)

	// Unchecking from the legacy format re-encodes as JSON.
	v = ToggleOption("Forest, Wetland", "Forest", false)
	assert.Equal(t, `["Wetland"]`, v)
}

func TestDecodeOptions(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, DecodeOptions(json.RawMessage(`["A","B"]`)))
	// Double-encoded: a JSON string holding a JSON array.
	assert.Equal(t, []string{"A", "B"}, DecodeOptions(json.RawMessage(`"[\"A\",\"B\"]"`)))
	// Oldest records: comma-separated inside a string.
	assert.Equal(t, []string{"A", "B"}, DecodeOptions(json.RawMessage(`"A, B"`)))
	assert.Nil(t, DecodeOptions(nil))
	assert.Nil(t, DecodeOptions(json.RawMessage(`{bad`)))
	assert.Nil(t, DecodeOptions(json.RawMessage(`123`)))
}

func TestMultiSelectFlag(t *testing.T) {
	q := Question{QuestionType: TypeMultipleChoice, Details: map[string]any{"allow_multiple": true}}
	assert.True(t, q.MultiSelect())

	assert.False(t, Question{QuestionType: TypeMultipleChoice}.MultiSelect())
	assert.False(t, Question{QuestionType: TypeText, Details: map[string]any{"allow_multiple": true}}.MultiSelect())
	assert.False(t, Question{QuestionType: TypeMultipleChoice, Details: map[string]any{"allow_multiple": "yes"}}.MultiSelect())
}

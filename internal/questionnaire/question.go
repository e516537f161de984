// Package questionnaire implements the dynamic questionnaire engine:
// conditional visibility between questions, section grouping with display
// numbering, answer encoding for multi-select questions and submission
// payload assembly. All functions are pure; callers own the answer map.
package questionnaire

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Question types understood by the engine.
const (
	TypeText           = "text"
	TypeNumber         = "number"
	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeBoolean        = "boolean"
	TypeYesNo          = "yes_no"
	TypeDate           = "date"
	TypeTextarea       = "textarea"
)

// AnyAnswerToken is the depends_on_value sentinel meaning "parent has any
// non-empty answer".
const AnyAnswerToken = "*"

// DefaultSection buckets questions without an explicit section label.
const DefaultSection = "General"

// Question is the wire representation of a questionnaire question.
type Question struct {
	ID             uint            `json:"id"`
	QuestionText   string          `json:"question_text"`
	QuestionType   string          `json:"question_type"`
	IsRequired     bool            `json:"is_required"`
	Section        string          `json:"section,omitempty"`
	OrderIndex     int             `json:"order_index"`
	Options        []string        `json:"options,omitempty"`
	DependsOn      *ParentRef      `json:"depends_on,omitempty"`
	DependsOnValue *DependsOnValue `json:"depends_on_value,omitempty"`
	Details        map[string]any  `json:"details,omitempty"`
}

// MultiSelect reports whether a multiple_choice question allows more than
// one selected option (flagged in details).
func (q Question) MultiSelect() bool {
	if q.QuestionType != TypeMultipleChoice || q.Details == nil {
		return false
	}
	v, ok := q.Details["allow_multiple"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// ChoiceType reports whether the question type requires an options list.
func (q Question) ChoiceType() bool {
	return q.QuestionType == TypeSingleChoice || q.QuestionType == TypeMultipleChoice
}

// ParentRef references the question another question depends on, either by
// numeric id or by its exact question text. The JSON form is a bare number
// or a bare string.
type ParentRef struct {
	ID   uint
	Text string
}

// ByID reports whether the reference is numeric.
func (r ParentRef) ByID() bool {
	return r.Text == ""
}

func (r ParentRef) MarshalJSON() ([]byte, error) {
	if r.ByID() {
		return json.Marshal(r.ID)
	}
	return json.Marshal(r.Text)
}

func (r *ParentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ParentRef{}
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err == nil {
		*r = ParentRef{ID: id}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*r = ParentRef{Text: text}
		return nil
	}
	// Authoring tools occasionally emit unquoted garbage here; keep the raw
	// token as a text reference so resolution can still fail soft.
	*r = ParentRef{Text: string(data)}
	return nil
}

// DependsOnValue is the answer a parent question must carry for the
// dependent question to be shown. The JSON form is a string, an array of
// strings, or the "*" sentinel.
type DependsOnValue struct {
	Scalar string
	List   []string
	IsList bool
}

// AnyAnswer reports whether the value is the non-empty sentinel.
func (v DependsOnValue) AnyAnswer() bool {
	return !v.IsList && normalize(v.Scalar) == AnyAnswerToken
}

func (v DependsOnValue) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

func (v *DependsOnValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = DependsOnValue{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = DependsOnValue{List: list, IsList: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = DependsOnValue{Scalar: s}
		return nil
	}
	*v = DependsOnValue{Scalar: string(data)}
	return nil
}

// normalize trims and lower-cases an answer for scalar comparison. Array
// comparisons are deliberately left exact: options are authored verbatim
// and existing questionnaires depend on that.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package model

import (
	"encoding/json"

	"biodiv_backend/internal/questionnaire"
)

// Question is the persisted form of a questionnaire question. The flexible
// fields (options, dependency reference and value, free-form details) live
// in JSON columns; the questionnaire package owns their wire semantics.
// swagger:model Question
type Question struct {
	BaseModel
	QuestionText   string          `gorm:"type:text;not null" json:"question_text"`
	QuestionType   string          `gorm:"size:50;not null" json:"question_type"` // text, number, single_choice, multiple_choice, boolean, date, textarea
	IsRequired     bool            `gorm:"default:false" json:"is_required"`
	Section        string          `gorm:"size:255" json:"section"`
	OrderIndex     int             `gorm:"default:0;index" json:"order_index"`
	Options        json.RawMessage `gorm:"type:json" json:"options"`
	DependsOn      json.RawMessage `gorm:"type:json" json:"depends_on"`       // numeric id or question text
	DependsOnValue json.RawMessage `gorm:"type:json" json:"depends_on_value"` // string, []string or "*"
	Details        json.RawMessage `gorm:"type:json" json:"details"`
}

func (Question) TableName() string {
	return "questions"
}

// Engine converts the row into the engine's wire type. Stored JSON is
// decoded defensively: a corrupt column degrades to an empty value instead
// of failing the whole question list.
func (q Question) Engine() questionnaire.Question {
	eq := questionnaire.Question{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
		IsRequired:   q.IsRequired,
		Section:      q.Section,
		OrderIndex:   q.OrderIndex,
		Options:      questionnaire.DecodeOptions(q.Options),
	}

	if len(q.DependsOn) > 0 && string(q.DependsOn) != "null" {
		var ref questionnaire.ParentRef
		if err := json.Unmarshal(q.DependsOn, &ref); err == nil {
			eq.DependsOn = &ref
		}
	}
	if len(q.DependsOnValue) > 0 && string(q.DependsOnValue) != "null" {
		var val questionnaire.DependsOnValue
		if err := json.Unmarshal(q.DependsOnValue, &val); err == nil {
			eq.DependsOnValue = &val
		}
	}
	if len(q.Details) > 0 {
		var details map[string]any
		if err := json.Unmarshal(q.Details, &details); err == nil {
			eq.Details = details
		}
	}
	return eq
}

// ApplyEngine writes the engine representation back into the row's columns.
func (q *Question) ApplyEngine(eq questionnaire.Question) {
	q.QuestionText = eq.QuestionText
	q.QuestionType = eq.QuestionType
	q.IsRequired = eq.IsRequired
	q.Section = eq.Section
	q.OrderIndex = eq.OrderIndex

	q.Options = marshalOrNil(eq.Options, len(eq.Options) > 0)
	q.DependsOn = marshalOrNil(eq.DependsOn, eq.DependsOn != nil)
	q.DependsOnValue = marshalOrNil(eq.DependsOnValue, eq.DependsOnValue != nil)
	q.Details = marshalOrNil(eq.Details, len(eq.Details) > 0)
}

func marshalOrNil(v any, present bool) json.RawMessage {
	if !present {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// EngineQuestions converts a result set in one pass.
func EngineQuestions(rows []Question) []questionnaire.Question {
	out := make([]questionnaire.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Engine())
	}
	return out
}

package service

import (
	"biodiv_backend/internal/questionnaire"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func storedQuestion() questionnaire.Question {
	return questionnaire.Question{
		ID:           4,
		QuestionText: "Was any crop damaged?",
		QuestionType: questionnaire.TypeYesNo,
		IsRequired:   true,
		Section:      "Human-Elephant",
		OrderIndex:   40,
	}
}

func TestMergeQuestionPatchTextOnlyKeepsRequired(t *testing.T) {
	merged := mergeQuestionPatch(storedQuestion(), QuestionPatch{
		QuestionText: strPtr("Was any crop destroyed?"),
	})

	assert.Equal(t, "Was any crop destroyed?", merged.QuestionText)
	assert.True(t, merged.IsRequired)
	assert.Equal(t, "Human-Elephant", merged.Section)
	assert.Equal(t, 40, merged.OrderIndex)
	assert.Equal(t, questionnaire.TypeYesNo, merged.QuestionType)
}

func TestMergeQuestionPatchCanSetZeroValues(t *testing.T) {
	merged := mergeQuestionPatch(storedQuestion(), QuestionPatch{
		IsRequired: boolPtr(false),
		OrderIndex: intPtr(0),
		Section:    strPtr(""),
	})

	assert.False(t, merged.IsRequired)
	assert.Equal(t, 0, merged.OrderIndex)
	assert.Equal(t, "", merged.Section)
	assert.Equal(t, "Was any crop damaged?", merged.QuestionText)
}

func TestMergeQuestionPatchEmptyPatchIsIdentity(t *testing.T) {
	base := storedQuestion()
	assert.Equal(t, base, mergeQuestionPatch(base, QuestionPatch{}))
}

func TestMergeQuestionPatchReplacesDependency(t *testing.T) {
	ref := questionnaire.ParentRef{ID: 2}
	val := questionnaire.DependsOnValue{Scalar: "Yes"}
	merged := mergeQuestionPatch(storedQuestion(), QuestionPatch{
		DependsOn:      &ref,
		DependsOnValue: &val,
	})

	assert.Equal(t, &ref, merged.DependsOn)
	assert.Equal(t, &val, merged.DependsOnValue)
	assert.True(t, merged.IsRequired)
}

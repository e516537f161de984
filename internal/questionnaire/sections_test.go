package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleQuestionsSortedStable(t *testing.T) {
	all := []Question{
		{ID: 1, QuestionText: "third", OrderIndex: 5},
		{ID: 2, QuestionText: "first", OrderIndex: 1},
		{ID: 3, QuestionText: "tie-a", OrderIndex: 3},
		{ID: 4, QuestionText: "tie-b", OrderIndex: 3},
	}

	visible := VisibleQuestions(all, nil)
	require.Len(t, visible, 4)
	assert.Equal(t, []uint{2, 3, 4, 1}, []uint{visible[0].ID, visible[1].ID, visible[2].ID, visible[3].ID})
}

func TestDisplayNumberingDenseOverVisibleSet(t *testing.T) {
	all := []Question{
		{ID: 1, QuestionText: "Q1", OrderIndex: 1},
		{ID: 2, QuestionText: "Q2", OrderIndex: 2, DependsOn: refID(1), DependsOnValue: scalar("Yes")},
		{ID: 3, QuestionText: "Q3", OrderIndex: 3},
	}

	// Q2 hidden: Q1 gets number 1, Q3 gets number 2.
	sections := VisibleSections(all, map[uint]string{})
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Questions, 2)
	assert.Equal(t, uint(1), sections[0].Questions[0].ID)
	assert.Equal(t, 1, sections[0].Questions[0].Number)
	assert.Equal(t, uint(3), sections[0].Questions[1].ID)
	assert.Equal(t, 2, sections[0].Questions[1].Number)

	// Q2 visible again: numbers shift.
	sections = VisibleSections(all, map[uint]string{1: "Yes"})
	require.Len(t, sections[0].Questions, 3)
	assert.Equal(t, 2, sections[0].Questions[1].Number)
	assert.Equal(t, uint(2), sections[0].Questions[1].ID)
}

func TestSectionsGroupedInFirstEncounterOrder(t *testing.T) {
	all := []Question{
		{ID: 1, OrderIndex: 1, Section: "Socio-Economic"},
		{ID: 2, OrderIndex: 2},
		{ID: 3, OrderIndex: 3, Section: "Socio-Economic"},
		{ID: 4, OrderIndex: 4, Section: "Wildlife"},
	}

	sections := VisibleSections(all, nil)
	require.Len(t, sections, 3)
	assert.Equal(t, "Socio-Economic", sections[0].Name)
	assert.Equal(t, DefaultSection, sections[1].Name)
	assert.Equal(t, "Wildlife", sections[2].Name)

	// Numbering runs across sections, not per section.
	assert.Equal(t, 1, sections[0].Questions[0].Number)
	assert.Equal(t, 2, sections[1].Questions[0].Number)
	assert.Equal(t, 3, sections[0].Questions[1].Number)
	assert.Equal(t, 4, sections[2].Questions[0].Number)
}

func TestEndToEndElephantScenario(t *testing.T) {
	all := []Question{
		{ID: 1, QuestionText: "Seen elephant?", QuestionType: TypeBoolean, OrderIndex: 1},
		{ID: 2, QuestionText: "How many?", QuestionType: TypeNumber, OrderIndex: 2, DependsOn: refID(1), DependsOnValue: scalar("Yes")},
	}

	sections := VisibleSections(all, map[uint]string{1: "No"})
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Questions, 1)
	assert.Equal(t, uint(1), sections[0].Questions[0].ID)

	sections = VisibleSections(all, map[uint]string{1: "Yes"})
	require.Len(t, sections[0].Questions, 2)
	assert.Equal(t, uint(2), sections[0].Questions[1].ID)
	assert.Equal(t, 2, sections[0].Questions[1].Number)
}

func TestSplitLegacyParts(t *testing.T) {
	all := []Question{
		{ID: 1, OrderIndex: 0},
		{ID: 2, OrderIndex: 10},
		{ID: 3, OrderIndex: 11},
		{ID: 4, OrderIndex: 20},
		{ID: 5, OrderIndex: 21},
		{ID: 6, OrderIndex: 40},
	}

	parts := SplitLegacyParts(all)
	assert.Len(t, parts.PartA, 2)
	assert.Len(t, parts.PartB, 2)
	assert.Len(t, parts.PartC, 2)
	assert.Equal(t, uint(5), parts.PartC[0].ID)
}

package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswersOmitsHiddenQuestions(t *testing.T) {
	all := []Question{
		{ID: 1, QuestionText: "Seen elephant?", OrderIndex: 1},
		{ID: 2, QuestionText: "How many?", OrderIndex: 2, DependsOn: refID(1), DependsOnValue: scalar("Yes")},
	}

	// The user answered q2 while q1 was "Yes", then flipped q1 to "No":
	// q2's stale answer must not submit.
	answers := map[uint]string{1: "No", 2: "4"}
	built := BuildAnswers(all, answers)
	require.Len(t, built, 1)
	assert.Equal(t, uint(1), built[0].QuestionID)
	assert.Equal(t, "No", built[0].AnswerText)
}

func TestBuildAnswersUniqueAndOrdered(t *testing.T) {
	all := []Question{
		{ID: 3, QuestionText: "c"},
		{ID: 1, QuestionText: "a"},
		{ID: 2, QuestionText: "b"},
	}
	answers := map[uint]string{3: "z", 1: "x", 2: "y", 99: "unknown question"}

	built := BuildAnswers(all, answers)
	require.Len(t, built, 3)
	seen := map[uint]bool{}
	for i, a := range built {
		assert.False(t, seen[a.QuestionID])
		seen[a.QuestionID] = true
		if i > 0 {
			assert.Greater(t, a.QuestionID, built[i-1].QuestionID)
		}
	}
}

func TestBuildAnswersSkipsEmptyValues(t *testing.T) {
	all := []Question{{ID: 1, QuestionText: "a"}}
	assert.Empty(t, BuildAnswers(all, map[uint]string{1: ""}))
}

func TestAnswerMapLastOccurrenceWins(t *testing.T) {
	m := AnswerMap([]Answer{
		{QuestionID: 1, AnswerText: "first"},
		{QuestionID: 2, AnswerText: "keep"},
		{QuestionID: 1, AnswerText: "second"},
	})
	assert.Equal(t, "second", m[1])
	assert.Equal(t, "keep", m[2])
}

func TestParseCoordinate(t *testing.T) {
	for _, blank := range []string{"", "  ", "null", "undefined", "NaN", "nan"} {
		assert.Nil(t, ParseCoordinate(blank), "input %q", blank)
	}
	assert.Nil(t, ParseCoordinate("not a number"))

	v := ParseCoordinate(" 27.7172 ")
	require.NotNil(t, v)
	assert.InDelta(t, 27.7172, *v, 1e-9)

	neg := ParseCoordinate("-85.3240")
	require.NotNil(t, neg)
	assert.InDelta(t, -85.3240, *neg, 1e-9)
}

func TestParseID(t *testing.T) {
	assert.Nil(t, ParseID(""))
	assert.Nil(t, ParseID("undefined"))
	assert.Nil(t, ParseID("0"))
	assert.Nil(t, ParseID("-3"))
	assert.Nil(t, ParseID("12.5"))

	id := ParseID("12")
	require.NotNil(t, id)
	assert.Equal(t, uint(12), *id)
}

func TestSubmissionUnmarshalTolerantNumerics(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"numbers", `{"species_id":3,"location_name":"River bend","location_latitude":27.7,"location_longitude":85.3,"answers":[{"question_id":1,"answer_text":"Yes"}]}`},
		{"numeric strings", `{"species_id":"3","location_name":"River bend","location_latitude":"27.7","location_longitude":"85.3","answers":[{"question_id":1,"answer_text":"Yes"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sub Submission
			require.NoError(t, json.Unmarshal([]byte(tc.body), &sub))
			require.NotNil(t, sub.SpeciesID)
			assert.Equal(t, uint(3), *sub.SpeciesID)
			require.NotNil(t, sub.LocationLatitude)
			assert.InDelta(t, 27.7, *sub.LocationLatitude, 1e-9)
			require.NotNil(t, sub.LocationLongitude)
			assert.Equal(t, "River bend", sub.LocationName)
			require.Len(t, sub.Answers, 1)
		})
	}
}

func TestSubmissionUnmarshalBlankNumericsBecomeNil(t *testing.T) {
	body := `{"species_id":"","location_name":"x","location_latitude":null,"location_longitude":"NaN","answers":[]}`

	var sub Submission
	require.NoError(t, json.Unmarshal([]byte(body), &sub))
	assert.Nil(t, sub.SpeciesID)
	assert.Nil(t, sub.LocationLatitude)
	assert.Nil(t, sub.LocationLongitude)
}

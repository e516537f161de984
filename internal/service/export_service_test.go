package service

import (
	"biodiv_backend/internal/model"
	"biodiv_backend/internal/questionnaire"
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportQuestion(id uint, text string, order int, multi bool) questionnaire.Question {
	q := questionnaire.Question{ID: id, QuestionText: text, QuestionType: questionnaire.TypeSingleChoice, OrderIndex: order}
	if multi {
		q.QuestionType = questionnaire.TypeMultipleChoice
		q.Details = map[string]any{"allow_multiple": true}
	}
	return q
}

func float64Ptr(v float64) *float64 { return &v }

func TestBuildCSVHeaderFollowsDisplayOrder(t *testing.T) {
	questions := []questionnaire.Question{
		exportQuestion(2, "Second", 20, false),
		exportQuestion(1, "First", 10, false),
	}

	var buf bytes.Buffer
	require.NoError(t, BuildCSV(&buf, questions, nil, nil, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"id", "user", "species", "location_name", "location_latitude",
		"location_longitude", "notes", "verified", "created_at", "First", "Second",
	}, rows[0])
}

func TestBuildCSVRow(t *testing.T) {
	questions := []questionnaire.Question{
		exportQuestion(1, "Crop type", 10, true),
		exportQuestion(2, "Damage seen", 20, false),
	}
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	logs := []model.SpeciesLog{
		{
			BaseModel:        model.BaseModel{ID: 7, CreatedAt: created},
			UserID:           3,
			SpeciesID:        5,
			LocationName:     "North field",
			LocationLatitude: float64Ptr(-1.25),
			Notes:            "two adults",
			Verified:         true,
			Answers: []model.LogAnswer{
				{QuestionID: 1, AnswerText: `["Maize","Beans"]`},
				{QuestionID: 2, AnswerText: "Yes"},
			},
		},
	}
	users := map[uint]string{3: "amina"}
	species := map[uint]string{5: "Elephant"}

	var buf bytes.Buffer
	require.NoError(t, BuildCSV(&buf, questions, logs, users, species))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "amina", row[1])
	assert.Equal(t, "Elephant", row[2])
	assert.Equal(t, "North field", row[3])
	assert.Equal(t, "-1.25", row[4])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "two adults", row[6])
	assert.Equal(t, "true", row[7])
	assert.Equal(t, "2026-03-14 09:30:00", row[8])
	assert.Equal(t, "Maize; Beans", row[9])
	assert.Equal(t, "Yes", row[10])
}

func TestBuildCSVUnansweredQuestionsStayEmpty(t *testing.T) {
	questions := []questionnaire.Question{exportQuestion(1, "Crop type", 10, false)}
	logs := []model.SpeciesLog{{BaseModel: model.BaseModel{ID: 1}, UserID: 1, SpeciesID: 1}}

	var buf bytes.Buffer
	require.NoError(t, BuildCSV(&buf, questions, logs, map[uint]string{}, map[uint]string{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][9])
}

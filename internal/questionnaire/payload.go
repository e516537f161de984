package questionnaire

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Answer is one submitted questionnaire answer.
type Answer struct {
	QuestionID uint   `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

// Submission is the species_log part of an observation submission. The
// photo travels as a separate multipart attachment, never inlined here.
type Submission struct {
	SpeciesID         *uint    `json:"species_id"`
	LocationName      string   `json:"location_name"`
	LocationLatitude  *float64 `json:"location_latitude"`
	LocationLongitude *float64 `json:"location_longitude"`
	Notes             string   `json:"notes"`
	Answers           []Answer `json:"answers"`
}

// UnmarshalJSON accepts the numeric fields as JSON numbers, numeric
// strings, empty strings or null. Clients built on loosely typed form state
// send all of these; blank must become null, never the string "NaN" or
// "undefined".
func (s *Submission) UnmarshalJSON(data []byte) error {
	var aux struct {
		SpeciesID         json.RawMessage `json:"species_id"`
		LocationName      string          `json:"location_name"`
		LocationLatitude  json.RawMessage `json:"location_latitude"`
		LocationLongitude json.RawMessage `json:"location_longitude"`
		Notes             string          `json:"notes"`
		Answers           []Answer        `json:"answers"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.LocationName = aux.LocationName
	s.Notes = aux.Notes
	s.Answers = aux.Answers
	s.SpeciesID = ParseID(rawToken(aux.SpeciesID))
	s.LocationLatitude = ParseCoordinate(rawToken(aux.LocationLatitude))
	s.LocationLongitude = ParseCoordinate(rawToken(aux.LocationLongitude))
	return nil
}

// rawToken flattens a raw JSON value to its textual content, unquoting
// strings and mapping null to "".
func rawToken(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// blankNumeric matches the placeholder strings loosely typed clients leak
// for "no value".
func blankNumeric(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "undefined", "nan":
		return true
	}
	return false
}

// ParseCoordinate parses a latitude/longitude field, returning nil for
// blank or unusable input. NaN and infinities never pass through.
func ParseCoordinate(s string) *float64 {
	if blankNumeric(s) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseID parses a numeric id field, returning nil for blank or unusable
// input.
func ParseID(s string) *uint {
	if blankNumeric(s) {
		return nil
	}
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

// BuildAnswers turns the answer map into the submitted answer list. Only
// answers for currently visible questions are kept: an answer entered
// before a dependency change hid its question is stale and must not
// submit. Question ids are unique by construction and ordered ascending so
// the payload is deterministic.
func BuildAnswers(all []Question, answers map[uint]string) []Answer {
	byID := make(map[uint]Question, len(all))
	for _, q := range all {
		byID[q.ID] = q
	}

	result := make([]Answer, 0, len(answers))
	for id, text := range answers {
		q, known := byID[id]
		if !known || text == "" {
			continue
		}
		if !IsVisible(q, all, answers) {
			continue
		}
		result = append(result, Answer{QuestionID: id, AnswerText: text})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].QuestionID < result[j].QuestionID
	})
	return result
}

// AnswerMap collapses a submitted answer list into an answer map. Duplicate
// question ids keep the last occurrence, matching how the client's form
// state would have overwritten earlier values.
func AnswerMap(answers []Answer) map[uint]string {
	m := make(map[uint]string, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a.AnswerText
	}
	return m
}

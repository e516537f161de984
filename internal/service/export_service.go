package service

import (
	"biodiv_backend/internal/model"
	"biodiv_backend/internal/questionnaire"
	"biodiv_backend/internal/util"
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ExportService renders the full observation dataset as CSV for
// offline analysis.
type ExportService struct {
	Observations *ObservationService
	Users        *UserService
	Species      *SpeciesService
}

func NewExportService(observations *ObservationService, users *UserService, species *SpeciesService) *ExportService {
	return &ExportService{Observations: observations, Users: users, Species: species}
}

// ExportCSV streams every observation to w.
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer) error {
	logs, _, err := s.Observations.GetAllLogs(ctx)
	if err != nil {
		return err
	}
	questions, err := s.Observations.Questions.GetAll(ctx)
	if err != nil {
		return err
	}
	users, err := s.Users.UsernameIndex()
	if err != nil {
		return err
	}
	species, err := s.Species.NameIndex(ctx)
	if err != nil {
		return err
	}
	return BuildCSV(w, questions, logs, users, species)
}

// BuildCSV writes one row per observation: fixed columns first, then one
// column per question in display order. Multi-select answers are decoded
// and joined with "; ".
func BuildCSV(w io.Writer, questions []questionnaire.Question, logs []model.SpeciesLog, users map[uint]string, species map[uint]string) error {
	ordered := make([]questionnaire.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	header := []string{"id", "user", "species", "location_name", "location_latitude", "location_longitude", "notes", "verified", "created_at"}
	for _, q := range ordered {
		header = append(header, q.QuestionText)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, entry := range logs {
		answers := make(map[uint]string, len(entry.Answers))
		for _, a := range entry.Answers {
			answers[a.QuestionID] = a.AnswerText
		}

		row := []string{
			strconv.FormatUint(uint64(entry.ID), 10),
			users[entry.UserID],
			species[entry.SpeciesID],
			entry.LocationName,
			formatCoord(entry.LocationLatitude),
			formatCoord(entry.LocationLongitude),
			entry.Notes,
			strconv.FormatBool(entry.Verified),
			entry.CreatedAt.Format(util.TimeFormat),
		}
		for _, q := range ordered {
			row = append(row, exportAnswer(q, answers[q.ID]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportAnswer(q questionnaire.Question, raw string) string {
	if raw == "" {
		return ""
	}
	if q.MultiSelect() {
		return strings.Join(questionnaire.DecodeMultiValue(raw), "; ")
	}
	return raw
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

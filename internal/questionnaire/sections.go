package questionnaire

import "sort"

// NumberedQuestion is a visible question with its 1-based display number.
// Numbering is dense over the visible set only: hidden questions do not
// consume numbers, so numbers shift as visibility changes.
type NumberedQuestion struct {
	Question
	Number int `json:"question_number"`
}

// Section is an ordered group of visible questions sharing a section label.
type Section struct {
	Name      string             `json:"name"`
	Questions []NumberedQuestion `json:"questions"`
}

// VisibleQuestions filters the question set through IsVisible and sorts the
// result by order_index ascending. The sort is stable: ties keep their
// original relative order.
func VisibleQuestions(all []Question, answers map[uint]string) []Question {
	visible := make([]Question, 0, len(all))
	for _, q := range all {
		if IsVisible(q, all, answers) {
			visible = append(visible, q)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].OrderIndex < visible[j].OrderIndex
	})
	return visible
}

// VisibleSections computes the render plan for the current answer state:
// visible questions, sorted, densely numbered, grouped into sections in the
// order each section is first encountered. Must be recomputed whenever the
// answer map changes.
func VisibleSections(all []Question, answers map[uint]string) []Section {
	visible := VisibleQuestions(all, answers)

	var sections []Section
	index := make(map[string]int)

	for i, q := range visible {
		name := q.Section
		if name == "" {
			name = DefaultSection
		}

		pos, ok := index[name]
		if !ok {
			pos = len(sections)
			index[name] = pos
			sections = append(sections, Section{Name: name})
		}

		sections[pos].Questions = append(sections[pos].Questions, NumberedQuestion{
			Question: q,
			Number:   i + 1,
		})
	}

	return sections
}

// LegacyParts mirrors the fixed three-part questionnaire overview used by
// the public landing view, bucketed by order_index range.
type LegacyParts struct {
	PartA []Question `json:"part_a"` // order_index 0-10
	PartB []Question `json:"part_b"` // order_index 11-20
	PartC []Question `json:"part_c"` // order_index 21+
}

// SplitLegacyParts buckets questions by order_index range, keeping input
// order within each part.
func SplitLegacyParts(all []Question) LegacyParts {
	var parts LegacyParts
	for _, q := range all {
		switch {
		case q.OrderIndex <= 10:
			parts.PartA = append(parts.PartA, q)
		case q.OrderIndex <= 20:
			parts.PartB = append(parts.PartB, q)
		default:
			parts.PartC = append(parts.PartC, q)
		}
	}
	return parts
}

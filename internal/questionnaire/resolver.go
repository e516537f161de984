package questionnaire

import "strings"

// ResolveParent finds the question a dependent question points at. A numeric
// reference matches by id; a text reference matches question_text after
// trimming, case-insensitively. The boolean result is the only signal for an
// unresolved reference; callers decide the fail-open policy and log it.
func ResolveParent(q Question, all []Question) (Question, bool) {
	if q.DependsOn == nil {
		return Question{}, false
	}
	if q.DependsOn.ByID() {
		for _, candidate := range all {
			if candidate.ID == q.DependsOn.ID {
				return candidate, true
			}
		}
		return Question{}, false
	}
	want := strings.ToLower(strings.TrimSpace(q.DependsOn.Text))
	for _, candidate := range all {
		if strings.ToLower(strings.TrimSpace(candidate.QuestionText)) == want {
			return candidate, true
		}
	}
	return Question{}, false
}

// IsVisible decides whether a question should currently be shown.
//
// A question without a dependency, or with depends_on but no
// depends_on_value, is always visible. An unresolved parent reference is
// treated as visible so inconsistent authoring never hides data. A resolved
// parent with no answer yet hides the dependent. Array-form expected values
// are matched exactly; scalar values are compared normalized, with the "*"
// sentinel meaning any non-empty parent answer.
//
// Dependencies chain, so this must be re-evaluated against the current
// answer map on every change; results are never cached here.
func IsVisible(q Question, all []Question, answers map[uint]string) bool {
	if q.DependsOn == nil || q.DependsOnValue == nil {
		return true
	}

	parent, found := ResolveParent(q, all)
	if !found {
		return true
	}

	parentAnswer, ok := answers[parent.ID]
	if !ok || parentAnswer == "" {
		return false
	}

	want := q.DependsOnValue
	if want.IsList {
		for _, v := range want.List {
			if v == parentAnswer {
				return true
			}
		}
		return false
	}

	got := normalize(parentAnswer)
	if want.AnyAnswer() {
		return got != ""
	}
	return got == normalize(want.Scalar)
}

// UnresolvedRefs returns the questions whose depends_on points at nothing,
// for observability at the service boundary.
func UnresolvedRefs(all []Question) []Question {
	var unresolved []Question
	for _, q := range all {
		if q.DependsOn == nil || q.DependsOnValue == nil {
			continue
		}
		if _, found := ResolveParent(q, all); !found {
			unresolved = append(unresolved, q)
		}
	}
	return unresolved
}

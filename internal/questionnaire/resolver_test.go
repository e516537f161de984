package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refID(id uint) *ParentRef            { return &ParentRef{ID: id} }
func refText(text string) *ParentRef      { return &ParentRef{Text: text} }
func scalar(v string) *DependsOnValue     { return &DependsOnValue{Scalar: v} }
func list(vs ...string) *DependsOnValue   { return &DependsOnValue{List: vs, IsList: true} }

func TestIsVisibleNoDependency(t *testing.T) {
	q := Question{ID: 1, QuestionText: "Village name", QuestionType: TypeText}
	all := []Question{q}

	for _, answers := range []map[uint]string{
		nil,
		{},
		{1: "something"},
		{99: "unrelated"},
	} {
		assert.True(t, IsVisible(q, all, answers))
	}
}

func TestIsVisibleInertDependency(t *testing.T) {
	// depends_on without depends_on_value carries no condition.
	q := Question{ID: 2, QuestionText: "Detail", DependsOn: refID(1)}
	all := []Question{{ID: 1, QuestionText: "Parent"}, q}

	assert.True(t, IsVisible(q, all, map[uint]string{}))
	assert.True(t, IsVisible(q, all, map[uint]string{1: "anything"}))
}

func TestResolveParentByID(t *testing.T) {
	parent := Question{ID: 7, QuestionText: "Seen elephant?"}
	child := Question{ID: 8, DependsOn: refID(7), DependsOnValue: scalar("Yes")}
	all := []Question{parent, child}

	resolved, found := ResolveParent(child, all)
	require.True(t, found)
	assert.Equal(t, uint(7), resolved.ID)
}

func TestResolveParentByTextTrimmedCaseInsensitive(t *testing.T) {
	parent := Question{ID: 3, QuestionText: "  Seen Elephant?  "}
	child := Question{ID: 4, DependsOn: refText("seen elephant?"), DependsOnValue: scalar("Yes")}
	all := []Question{parent, child}

	resolved, found := ResolveParent(child, all)
	require.True(t, found)
	assert.Equal(t, uint(3), resolved.ID)
}

func TestIsVisibleUnresolvedParentFailsOpen(t *testing.T) {
	q := Question{ID: 5, DependsOn: refText("no such question"), DependsOnValue: scalar("Yes")}
	all := []Question{{ID: 1, QuestionText: "Other"}, q}

	assert.True(t, IsVisible(q, all, map[uint]string{}))

	unresolved := UnresolvedRefs(all)
	require.Len(t, unresolved, 1)
	assert.Equal(t, uint(5), unresolved[0].ID)
}

func TestIsVisibleParentUnanswered(t *testing.T) {
	parent := Question{ID: 1, QuestionText: "Seen elephant?"}
	child := Question{ID: 2, DependsOn: refID(1), DependsOnValue: scalar("Yes")}
	all := []Question{parent, child}

	assert.False(t, IsVisible(child, all, map[uint]string{}))
	assert.False(t, IsVisible(child, all, map[uint]string{1: ""}))
}

func TestIsVisibleScalarComparisonNormalized(t *testing.T) {
	parent := Question{ID: 1, QuestionText: "Seen elephant?"}
	child := Question{ID: 2, DependsOn: refID(1), DependsOnValue: scalar("Yes")}
	all := []Question{parent, child}

	assert.True(t, IsVisible(child, all, map[uint]string{1: "Yes"}))
	assert.True(t, IsVisible(child, all, map[uint]string{1: " yes "}))
	assert.True(t, IsVisible(child, all, map[uint]string{1: "YES"}))
	assert.False(t, IsVisible(child, all, map[uint]string{1: "No"}))
}

func TestIsVisibleAnyAnswerSentinel(t *testing.T) {
	parent := Question{ID: 1, QuestionText: "Crop damage?"}
	child := Question{ID: 2, DependsOn: refID(1), DependsOnValue: scalar("*")}
	all := []Question{parent, child}

	// Whitespace-only normalizes to empty and stays hidden.
	assert.False(t, IsVisible(child, all, map[uint]string{1: "  "}))
	assert.True(t, IsVisible(child, all, map[uint]string{1: "no"}))
	assert.True(t, IsVisible(child, all, map[uint]string{1: "anything at all"}))
}

func TestIsVisibleListComparisonExact(t *testing.T) {
	parent := Question{ID: 1, QuestionText: "Habitat"}
	child := Question{ID: 2, DependsOn: refID(1), DependsOnValue: list("A", "B")}
	all := []Question{parent, child}

	assert.True(t, IsVisible(child, all, map[uint]string{1: "A"}))
	assert.True(t, IsVisible(child, all, map[uint]string{1: "B"}))
	// List matching is case-sensitive, unlike scalar matching.
	assert.False(t, IsVisible(child, all, map[uint]string{1: "a"}))
	assert.False(t, IsVisible(child, all, map[uint]string{1: "C"}))
}

func TestIsVisibleChainedDependencies(t *testing.T) {
	q1 := Question{ID: 1, QuestionText: "Seen wildlife?"}
	q2 := Question{ID: 2, QuestionText: "Which species?", DependsOn: refID(1), DependsOnValue: scalar("Yes")}
	q3 := Question{ID: 3, QuestionText: "Elephant count", DependsOn: refID(2), DependsOnValue: scalar("Elephant")}
	all := []Question{q1, q2, q3}

	answers := map[uint]string{1: "Yes", 2: "Elephant"}
	assert.True(t, IsVisible(q2, all, answers))
	assert.True(t, IsVisible(q3, all, answers))

	// Flipping the root cascades: q2 hides, and q3's own check still has a
	// stale parent answer, so it stays visible until that answer is pruned.
	answers[1] = "No"
	assert.False(t, IsVisible(q2, all, answers))
}

func TestParentRefJSONRoundTrip(t *testing.T) {
	var byID ParentRef
	require.NoError(t, json.Unmarshal([]byte(`7`), &byID))
	assert.True(t, byID.ByID())
	assert.Equal(t, uint(7), byID.ID)

	var byText ParentRef
	require.NoError(t, json.Unmarshal([]byte(`"Seen elephant?"`), &byText))
	assert.False(t, byText.ByID())
	assert.Equal(t, "Seen elephant?", byText.Text)

	out, err := json.Marshal(byID)
	require.NoError(t, err)
	assert.Equal(t, `7`, string(out))

	out, err = json.Marshal(byText)
	require.NoError(t, err)
	assert.Equal(t, `"Seen elephant?"`, string(out))
}

func TestDependsOnValueJSONForms(t *testing.T) {
	var s DependsOnValue
	require.NoError(t, json.Unmarshal([]byte(`"Yes"`), &s))
	assert.False(t, s.IsList)
	assert.Equal(t, "Yes", s.Scalar)

	var l DependsOnValue
	require.NoError(t, json.Unmarshal([]byte(`["A","B"]`), &l))
	assert.True(t, l.IsList)
	assert.Equal(t, []string{"A", "B"}, l.List)

	var star DependsOnValue
	require.NoError(t, json.Unmarshal([]byte(`"*"`), &star))
	assert.True(t, star.AnyAnswer())
}

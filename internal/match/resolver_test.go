package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(names ...string) []Candidate {
	out := make([]Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, Candidate{ID: uuid.New(), NameEN: n})
	}
	return out
}

func TestExactMatch(t *testing.T) {
	cs := []Candidate{
		{NameEN: "Alpha Contracting", NameAR: "ألفا للمقاولات"},
		{NameEN: "Delta Trading", NameAR: "دلتا للتجارة"},
	}

	assert.Equal(t, "Alpha Contracting", Exact("alpha contracting", cs).NameEN)
	assert.Equal(t, "Delta Trading", Exact("دلتا للتجارة", cs).NameEN)
	assert.Nil(t, Exact("Alpha", cs))
}

func TestSubstringMatchesBothDirections(t *testing.T) {
	cs := candidates("Alpha Contracting", "Delta Trading")

	// term inside reference name
	require.NotNil(t, Substring("alpha", cs))
	assert.Equal(t, "Alpha Contracting", Substring("alpha", cs).NameEN)

	// reference name inside term
	require.NotNil(t, Substring("Delta Trading LLC Branch 2", cs))
	assert.Equal(t, "Delta Trading", Substring("Delta Trading LLC Branch 2", cs).NameEN)

	assert.Nil(t, Substring("Gamma", cs))
}

func TestSubstringMatchesCode(t *testing.T) {
	cs := []Candidate{{Code: "ALPHA", NameEN: "Alpha Contracting"}}
	require.NotNil(t, Substring("alph", cs))
}

func TestLastTokenForJobTitles(t *testing.T) {
	jobs := candidates("Engineer", "Senior Specialist", "Accountant")

	// "Marketing Specialist" should land on "Senior Specialist" by suffix
	got := LastToken("Marketing Specialist", jobs)
	require.NotNil(t, got)
	assert.Equal(t, "Senior Specialist", got.NameEN)

	// short final tokens are too ambiguous
	assert.Nil(t, LastToken("Team Car", candidates("Carpenter")))
}

func TestJobResolverStrategyOrder(t *testing.T) {
	jobs := candidates("Engineer", "Senior Engineer")
	r := NewJobResolver()

	// exact wins before substring could pick "Senior Engineer"
	got := r.Resolve("Engineer", jobs)
	require.NotNil(t, got)
	assert.Equal(t, "Engineer", got.NameEN)

	// falls through to last-token: "Chief Engineer" has "Engineer" as suffix
	got = r.Resolve("Chief Mechanical Gearbox", jobs)
	assert.Nil(t, got)
}

func TestNationalityResolverIsExactOnly(t *testing.T) {
	nationalities := candidates("Indian", "Indonesian", "Egyptian")
	r := NewNationalityResolver()

	require.NotNil(t, r.Resolve("Indian", nationalities))
	assert.Equal(t, "Indian", r.Resolve("indian", nationalities).NameEN)

	// a substring or misspelling must not be guessed
	assert.Nil(t, r.Resolve("India", nationalities))
	assert.Nil(t, r.Resolve("Egyption", nationalities))
}

func TestResolveBlankTerm(t *testing.T) {
	r := NewNameResolver()
	assert.Nil(t, r.Resolve("", candidates("Alpha")))
	assert.Nil(t, r.Resolve("   ", candidates("Alpha")))
}

func TestSuggest(t *testing.T) {
	nationalities := candidates("Indian", "Indonesian", "Egyptian", "Jordanian")

	got := Suggest("indian", nationalities, 5)
	assert.Contains(t, got, "Indian")

	// limit is honored
	many := candidates("Senior Engineer", "Network Engineer", "Site Engineer", "Civil Engineer")
	limited := Suggest("Engineer", many, 2)
	assert.Len(t, limited, 2)

	assert.Empty(t, Suggest("zzz", nationalities, 5))
}

func TestNames(t *testing.T) {
	cs := candidates("Alpha", "Delta")
	assert.Equal(t, []string{"Alpha", "Delta"}, Names(cs))
}

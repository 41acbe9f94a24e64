package matcher

import (
	"testing"

	"candidate-sync/internal/storage"

	"github.com/stretchr/testify/assert"
)

func candidate(id, name, email, job, branch string) storage.Candidate {
	return storage.Candidate{ID: id, SheetFields: storage.SheetFields{
		Name: name, Email: email, JobTitle: job, Branch: branch,
	}}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"דנה לוי", "דנה  לוי", true},
		{"Dana Levi", "dana levi", true},
		{"דנה לוי", "דנה", true},
		{"Yossi Cohen", "יוסי כהן", true},
		{"Moshe Shalom", "משה שלום", true},
		{"Yossi Cohen", "רונית שמש", false},
		{"", "דנה", false},
		{"  ", "  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesMatch(tt.a, tt.b))
			assert.Equal(t, tt.want, NamesMatch(tt.b, tt.a), "symmetric")
		})
	}
}

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "shlvm", Transliterate("שלום"))
	assert.Equal(t, "tsbi", Transliterate("צבי"))
	assert.Equal(t, "abc", Transliterate("ABC"))
}

func TestSkeleton(t *testing.T) {
	assert.Equal(t, "skn", Skeleton("יוסי כהן"))
	assert.Equal(t, "skn", Skeleton("Yossi Cohen"))
	assert.Equal(t, "mslm", Skeleton("משה שלום"))
	assert.Equal(t, "mslm", Skeleton("Moshe Shalom"))
}

func TestFindCandidate_TransliterationPath(t *testing.T) {
	existing := []storage.Candidate{
		candidate("1", "רונית שמש", "", "", ""),
		candidate("2", "Yossi Cohen", "", "", ""),
	}

	got, ok := FindCandidate(existing, Query{Name: "יוסי כהן"})

	assert.True(t, ok)
	assert.Equal(t, "2", got.ID)
}

func TestFindCandidate_EmailFirst(t *testing.T) {
	existing := []storage.Candidate{
		candidate("1", "דנה לוי", "", "", ""),
		candidate("2", "Someone Else", "Dana@Example.com", "", ""),
	}

	got, ok := FindCandidate(existing, Query{Name: "דנה לוי", Email: " dana@example.com "})

	assert.True(t, ok)
	assert.Equal(t, "2", got.ID)
}

func TestFindCandidate_EmptyEmailsNeverMatch(t *testing.T) {
	existing := []storage.Candidate{candidate("1", "Other", "", "", "")}

	_, ok := FindCandidate(existing, Query{Name: "דנה לוי", Email: ""})

	assert.False(t, ok)
}

func TestFindCandidate_JobHintNarrows(t *testing.T) {
	existing := []storage.Candidate{
		candidate("1", "דנה לוי", "", "מנהל סחר", ""),
		candidate("2", "דנה לוי", "", "", "קיר טיפוס חולון"),
	}

	got, ok := FindCandidate(existing, Query{Name: "דנה לוי", JobTitle: "קיר טיפוס"})
	assert.True(t, ok)
	assert.Equal(t, "2", got.ID)

	// no overlap: falls back to the first name match
	got, ok = FindCandidate(existing, Query{Name: "דנה לוי", JobTitle: "חשב שכר"})
	assert.True(t, ok)
	assert.Equal(t, "1", got.ID)
}

func TestFindCandidate_NoMatch(t *testing.T) {
	existing := []storage.Candidate{candidate("1", "רונית שמש", "r@example.com", "", "")}

	_, ok := FindCandidate(existing, Query{Name: "Yossi Cohen", Email: "y@example.com"})
	assert.False(t, ok)

	_, ok = FindCandidate(nil, Query{Name: "Yossi Cohen"})
	assert.False(t, ok)

	_, ok = FindCandidate(existing, Query{})
	assert.False(t, ok)
}

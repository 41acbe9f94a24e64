package importer

import (
	"testing"

	"candidate-sync/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCVRow(t *testing.T) {
	l := layoutFor(t, "cv_update")
	ci := Resolve(l, []string{"שם", "תפקיד", "קורות חיים", "אימייל"})

	link, reason := MapCVRow([]string{"יוסי כהן", "מנהל סחר", "https://files.example/cv.pdf", "y@example.com"}, ci)
	assert.Empty(t, reason)
	assert.Equal(t, CVLink{Name: "יוסי כהן", JobTitle: "מנהל סחר", URL: "https://files.example/cv.pdf", Email: "y@example.com"}, link)

	_, reason = MapCVRow([]string{"יוסי כהן", "מנהל סחר", ""}, ci)
	assert.Equal(t, ReasonMissingRequired, reason)
}

func TestMatchCVLink(t *testing.T) {
	existing := []storage.Candidate{
		{ID: "c-1", SheetFields: storage.SheetFields{Name: "Yossi Cohen", JobTitle: "מנהל סחר"}},
		{ID: "c-2", SheetFields: storage.SheetFields{Name: "רונית שמש", Email: "ronit@example.com"}},
	}

	u, ok := MatchCVLink(existing, CVLink{Name: "יוסי כהן", URL: "https://files.example/y.pdf", Email: "y@example.com"}, "cv_update")
	require.True(t, ok)
	assert.Equal(t, "c-1", u.ID)
	assert.Equal(t, "cv_update", u.Tab)
	assert.Equal(t, "https://files.example/y.pdf", *u.Update.CVURL)
	require.NotNil(t, u.Update.Email, "stored email is empty and gets filled")
	assert.Equal(t, "y@example.com", *u.Update.Email)
	assert.Nil(t, u.Update.Sheet)

	u, ok = MatchCVLink(existing, CVLink{Name: "רונית שמש", URL: "https://files.example/r.pdf", Email: "other@example.com"}, "cv_update")
	require.True(t, ok)
	assert.Equal(t, "c-2", u.ID)
	assert.Nil(t, u.Update.Email, "stored email is kept")

	_, ok = MatchCVLink(existing, CVLink{Name: "Unknown Person", URL: "https://files.example/u.pdf"}, "cv_update")
	assert.False(t, ok)
}

func TestMatchCVLink_SameLinkIsNoop(t *testing.T) {
	existing := []storage.Candidate{
		{ID: "c-1", SheetFields: storage.SheetFields{Name: "Yossi Cohen"}, CVURL: "https://files.example/y.pdf"},
	}

	u, ok := MatchCVLink(existing, CVLink{Name: "Yossi Cohen", URL: "https://files.example/y.pdf"}, "cv_update")
	require.True(t, ok)
	assert.True(t, u.Update.Empty())

	u, ok = MatchCVLink(existing, CVLink{Name: "Yossi Cohen", URL: "https://files.example/y.pdf", Email: "y@example.com"}, "cv_update")
	require.True(t, ok)
	assert.Nil(t, u.Update.CVURL, "link unchanged")
	require.NotNil(t, u.Update.Email)
	assert.Equal(t, "y@example.com", *u.Update.Email)
}

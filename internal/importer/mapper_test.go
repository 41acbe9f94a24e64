package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var generalHeader = []string{"תאריך ושעה", "שם מועמד", "טלפון", "אימייל", "עיר"}

func TestMapRow_General(t *testing.T) {
	l := layoutFor(t, "general")
	ci := Resolve(l, generalHeader)

	in, reason := MapRow([]string{"01/01/2026 10:00", " דנה לוי ", "0501234567", "dana@example.com", "חולון"}, ci, l)

	assert.Empty(t, reason)
	assert.Equal(t, "דנה לוי", in.Name)
	assert.Equal(t, "0501234567", in.Phone)
	assert.Equal(t, "general", in.Position)
	assert.Equal(t, "dana@example.com", in.Email)
	assert.Equal(t, "חולון", in.City)
	assert.Equal(t, "01/01/2026 10:00", in.ContactTime)
	assert.Equal(t, "", in.Transportation)
	assert.Nil(t, in.Extensions, "tabs without a track carry no extension keys")
	assert.Equal(t, "", in.SheetNotes, "short row: notes column absent")
}

func TestMapRow_RejectsMissingIdentity(t *testing.T) {
	l := layoutFor(t, "general")
	ci := Resolve(l, generalHeader)

	_, reason := MapRow([]string{"", "דנה לוי", "  "}, ci, l)
	assert.Equal(t, ReasonMissingRequired, reason)

	_, reason = MapRow([]string{"", "", "0501234567"}, ci, l)
	assert.Equal(t, ReasonMissingRequired, reason)

	_, reason = MapRow([]string{""}, ci, l)
	assert.Equal(t, ReasonMissingRequired, reason)
}

func TestMapRow_RejectsPhoneWithoutDigits(t *testing.T) {
	l := layoutFor(t, "general")
	ci := Resolve(l, generalHeader)

	_, reason := MapRow([]string{"", "דנה לוי", "אין טלפון"}, ci, l)

	assert.Equal(t, ReasonInvalidPhone, reason)
}

func TestMapRow_TrackExtensionsAndNotes(t *testing.T) {
	l := layoutFor(t, "climbing_wall")
	ci := Resolve(l, make([]string, 13))
	row := []string{"01/02/2026", "חולון", "Yossi Cohen", "0527654321", "רמת גן",
		"כן", "מדריך 3 שנים", "לא", "", "בקרים", "yossi@example.com", "", "התקשר שוב"}

	in, reason := MapRow(row, ci, l)

	assert.Empty(t, reason)
	assert.Equal(t, "חולון", in.Branch)
	assert.Equal(t, "רמת גן", in.City)
	assert.Equal(t, "yossi@example.com", in.Email)
	assert.Equal(t, map[string]string{
		"instruction_experience":         "כן",
		"instruction_experience_details": "מדריך 3 שנים",
		"physical_activity_experience":   "לא",
		"physical_activity_details":      "",
		"work_hours_availability":        "בקרים",
	}, in.Extensions)
	assert.Equal(t, "התקשר שוב", in.SheetNotes)
}

package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "טלפון", "טלפון"},
		{"bom", "\uFEFFשם מועמד", "שם מועמד"},
		{"bidi marks", "\u200Fטלפון\u200E", "טלפון"},
		{"embedding", "\u202Bעיר\u202C", "עיר"},
		{"isolates", "\u2067עיר\u2069", "עיר"},
		{"zero width", "מו\u200Bעמד\u200D", "מועמד"},
		{"nbsp and runs", "  שם\u00A0\u00A0 מלא \t", "שם מלא"},
		{"only noise", "\u200F  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.raw))
		})
	}
}

func TestFindColumn_ExactBeforeSubstring(t *testing.T) {
	headers := []string{"שם מועמד", "טלפון"}
	assert.Equal(t, 1, FindColumn(headers, []string{"טלפון", "נייד"}))

	// "משרה" is a substring of header 0, but header 1 is an exact hit for a
	// lower-priority candidate.
	headers = []string{"תיאור משרה", "מועמד למשרה"}
	assert.Equal(t, 1, FindColumn(headers, []string{"משרה", "מועמד למשרה"}))
}

func TestFindColumn_SubstringFallback(t *testing.T) {
	headers := NormalizeHeaders([]string{"תאריך ושעה", "מספר טלפון נייד"})
	assert.Equal(t, 1, FindColumn(headers, []string{"טלפון", "נייד"}))
}

func TestFindColumn_NotFound(t *testing.T) {
	assert.Equal(t, NotFound, FindColumn([]string{"a", "b"}, []string{"אימייל"}))
	assert.Equal(t, NotFound, FindColumn(nil, []string{"a"}))
	assert.Equal(t, NotFound, FindColumn([]string{"a"}, []string{""}))
}

func TestFindColumnPrefix(t *testing.T) {
	headers := []string{"שם הקמפיין", "שם ומשפחה"}
	assert.Equal(t, 1, FindColumnPrefix(headers, "שם", []string{"קמפיין"}))
	assert.Equal(t, NotFound, FindColumnPrefix(headers, "טלפון", nil))
}

package sheet

import (
	"strings"
	"unicode"
)

// NotFound is the column index of a header that could not be resolved.
// Consumers treat it as "field absent in this tab".
const NotFound = -1

// invisible are stripped from headers: BOM, zero-width marks and bidi controls.
var invisible = map[rune]bool{
	'\uFEFF': true, // BOM
	'\u200B': true, // zero width space
	'\u200C': true, // ZWNJ
	'\u200D': true, // ZWJ
	'\u2060': true, // word joiner
	'\u200E': true, // LRM
	'\u200F': true, // RLM
	'\u202A': true, // LRE
	'\u202B': true, // RLE
	'\u202C': true, // PDF
	'\u202D': true, // LRO
	'\u202E': true, // RLO
	'\u2066': true, // LRI
	'\u2067': true, // RLI
	'\u2068': true, // FSI
	'\u2069': true, // PDI
}

// NormalizeHeader cleans the noise hand-edited Hebrew headers carry.
func NormalizeHeader(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	space := false
	for _, r := range raw {
		if invisible[r] {
			continue
		}
		if r == '\u00A0' || unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// FindColumn returns the index of the first header matching one of the
// candidates. All candidates are tried for an exact match before any
// substring match, so a short generic candidate cannot shadow a specific
// header elsewhere in the row. headers must already be normalized.
func FindColumn(headers []string, candidates []string) int {
	for _, c := range candidates {
		c = NormalizeHeader(c)
		for i, h := range headers {
			if h == c {
				return i
			}
		}
	}
	for _, c := range candidates {
		c = NormalizeHeader(c)
		if c == "" {
			continue
		}
		for i, h := range headers {
			if strings.Contains(h, c) {
				return i
			}
		}
	}
	return NotFound
}

// FindColumnPrefix returns the first header starting with prefix that
// contains none of the excluded words.
func FindColumnPrefix(headers []string, prefix string, exclude []string) int {
	prefix = NormalizeHeader(prefix)
	if prefix == "" {
		return NotFound
	}
next:
	for i, h := range headers {
		if !strings.HasPrefix(h, prefix) {
			continue
		}
		for _, x := range exclude {
			if x != "" && strings.Contains(h, x) {
				continue next
			}
		}
		return i
	}
	return NotFound
}

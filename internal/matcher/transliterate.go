package matcher

import (
	"strings"
	"unicode"
)

var hebrewToLatin = map[rune]string{
	'א': "a", 'ב': "b", 'ג': "g", 'ד': "d", 'ה': "h", 'ו': "v", 'ז': "z",
	'ח': "ch", 'ט': "t", 'י': "i", 'כ': "k", 'ך': "k", 'ל': "l", 'מ': "m",
	'ם': "m", 'נ': "n", 'ן': "n", 'ס': "s", 'ע': "a", 'פ': "p", 'ף': "p",
	'צ': "ts", 'ץ': "ts", 'ק': "k", 'ר': "r", 'ש': "sh", 'ת': "t",
}

// Transliterate maps each Hebrew letter to a fixed Latin approximation and
// lowercases the result. Other characters pass through.
func Transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if lat, ok := hebrewToLatin[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// hebrewConsonants is the sound class of each Hebrew letter. Letters that
// usually carry a vowel (א ה ו י ע) are absent and dropped.
var hebrewConsonants = map[rune]string{
	'ב': "v", 'ג': "g", 'ד': "d", 'ז': "z", 'ח': "k", 'ט': "t",
	'כ': "k", 'ך': "k", 'ל': "l", 'מ': "m", 'ם': "m", 'נ': "n", 'ן': "n",
	'ס': "s", 'פ': "f", 'ף': "f", 'צ': "ts", 'ץ': "ts", 'ק': "k", 'ר': "r",
	'ש': "s", 'ת': "t",
}

var latinDigraphs = []struct{ from, to string }{
	{"sch", "s"},
	{"ch", "k"},
	{"kh", "k"},
	{"ck", "k"},
	{"ph", "f"},
	{"sh", "s"},
	{"th", "t"},
	{"tz", "ts"},
}

var latinConsonants = map[rune]string{
	'b': "v", 'c': "k", 'd': "d", 'f': "f", 'g': "g", 'j': "g", 'k': "k",
	'l': "l", 'm': "m", 'n': "n", 'p': "f", 'q': "k", 'r': "r", 's': "s",
	't': "t", 'v': "v", 'x': "ks", 'z': "z",
}

// Skeleton reduces a Hebrew or romanized name to its consonant sounds, so
// that "יוסי כהן" and "Yossi Cohen" both become "skn". Vowels, h, w and y
// are dropped and repeated sounds collapse.
func Skeleton(name string) string {
	var raw strings.Builder
	latin := strings.ToLower(name)
	for _, d := range latinDigraphs {
		latin = strings.ReplaceAll(latin, d.from, d.to)
	}
	for _, r := range latin {
		if c, ok := hebrewConsonants[r]; ok {
			raw.WriteString(c)
		} else if c, ok := latinConsonants[r]; ok {
			raw.WriteString(c)
		}
	}

	var b strings.Builder
	var last rune
	for _, r := range raw.String() {
		if r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}

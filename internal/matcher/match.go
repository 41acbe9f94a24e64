// Package matcher locates an existing candidate from a loosely spelled name,
// bridging Hebrew and romanized spellings.
package matcher

import (
	"strings"
	"unicode"

	"candidate-sync/internal/storage"
)

const (
	prefixLen      = 4
	minSkeletonLen = 3
)

// Query is what a CV source knows about a candidate.
type Query struct {
	Name     string
	Email    string
	JobTitle string
}

// FindCandidate returns the first existing candidate matching q: by email
// when both sides have one, otherwise by name. A job title narrows the name
// match to candidates whose job title or branch overlaps it, falling back to
// name alone when nothing overlaps. There is no ranking; the first hit in
// iteration order wins.
func FindCandidate(existing []storage.Candidate, q Query) (storage.Candidate, bool) {
	if email := strings.TrimSpace(q.Email); email != "" {
		for _, c := range existing {
			if c.Email != "" && strings.EqualFold(strings.TrimSpace(c.Email), email) {
				return c, true
			}
		}
	}

	name := strings.TrimSpace(q.Name)
	if name == "" {
		return storage.Candidate{}, false
	}

	if hint := strings.TrimSpace(q.JobTitle); hint != "" {
		for _, c := range existing {
			if NamesMatch(c.Name, name) && jobOverlaps(c, hint) {
				return c, true
			}
		}
	}
	for _, c := range existing {
		if NamesMatch(c.Name, name) {
			return c, true
		}
	}
	return storage.Candidate{}, false
}

// NamesMatch compares two names ignoring whitespace and case: equality,
// containment, the same on transliterated forms, equal consonant skeletons,
// and finally a transliterated 4-letter prefix found inside the other name.
func NamesMatch(a, b string) bool {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb || strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	ta, tb := Transliterate(na), Transliterate(nb)
	if ta == tb || strings.Contains(ta, tb) || strings.Contains(tb, ta) {
		return true
	}

	if sa := Skeleton(na); len(sa) >= minSkeletonLen && sa == Skeleton(nb) {
		return true
	}

	if strings.Contains(nb, prefix(ta)) || strings.Contains(na, prefix(tb)) {
		return true
	}
	return false
}

func jobOverlaps(c storage.Candidate, hint string) bool {
	for _, v := range []string{c.JobTitle, c.Branch} {
		v = strings.TrimSpace(v)
		if v != "" && (strings.Contains(v, hint) || strings.Contains(hint, v)) {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

func prefix(s string) string {
	r := []rune(s)
	if len(r) > prefixLen {
		r = r[:prefixLen]
	}
	return string(r)
}

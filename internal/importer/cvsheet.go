package importer

import (
	"candidate-sync/internal/matcher"
	"candidate-sync/internal/storage"
)

// CVLink is one row of a cv_links tab.
type CVLink struct {
	Name     string
	JobTitle string
	URL      string
	Email    string
}

// MapCVRow reads a cv_links row. Rows without a name or link are dropped.
func MapCVRow(row []string, ci ColumnIndex) (CVLink, Reason) {
	link := CVLink{
		Name:     cell(row, ci.Of(storage.FieldName)),
		JobTitle: cell(row, ci.Of(storage.FieldJobTitle)),
		URL:      cell(row, ci.Of(FieldCVURL)),
		Email:    cell(row, ci.Of(storage.FieldEmail)),
	}
	if link.Name == "" || link.URL == "" {
		return CVLink{}, ReasonMissingRequired
	}
	return link, ""
}

// MatchCVLink finds the candidate a CV link belongs to and builds the update
// attaching it. The email is filled in only when the candidate has none. When
// the candidate already carries the link and needs no email, the returned
// update is empty.
func MatchCVLink(existing []storage.Candidate, link CVLink, tab string) (PendingUpdate, bool) {
	found, ok := matcher.FindCandidate(existing, matcher.Query{
		Name:     link.Name,
		Email:    link.Email,
		JobTitle: link.JobTitle,
	})
	if !ok {
		return PendingUpdate{}, false
	}

	u := PendingUpdate{ID: found.ID, Name: found.Name, Tab: tab}
	if found.CVURL != link.URL {
		url := link.URL
		u.Update.CVURL = &url
	}
	if link.Email != "" && found.Email == "" {
		email := link.Email
		u.Update.Email = &email
	}
	return u, true
}

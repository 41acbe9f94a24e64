package storage

import (
	"strings"
	"time"
	"unicode"
)

// Status is the triage state a recruiter assigns to a candidate.
type Status string

const (
	StatusNotHandled  Status = "not_handled"
	StatusMessageSent Status = "message_sent"
	StatusRelevant    Status = "relevant"
	StatusNotRelevant Status = "not_relevant"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotHandled, StatusMessageSent, StatusRelevant, StatusNotRelevant:
		return true
	}
	return false
}

// Field names a sheet-sourced candidate attribute. The values double as
// JSON keys and column names.
type Field string

const (
	FieldName                  Field = "name"
	FieldPhone                 Field = "phone"
	FieldPosition              Field = "position"
	FieldEmail                 Field = "email"
	FieldBranch                Field = "branch"
	FieldCampaign              Field = "campaign"
	FieldContactTime           Field = "contact_time"
	FieldCity                  Field = "city"
	FieldHasExperience         Field = "has_experience"
	FieldJobTitle              Field = "job_title"
	FieldExperienceDescription Field = "experience_description"
	FieldCurrentlyWorking      Field = "currently_working"
	FieldTransportation        Field = "transportation"
)

// SheetFieldOrder lists the core sheet fields in the order they are mapped,
// compared and persisted.
var SheetFieldOrder = []Field{
	FieldName,
	FieldPhone,
	FieldPosition,
	FieldEmail,
	FieldBranch,
	FieldCampaign,
	FieldContactTime,
	FieldCity,
	FieldHasExperience,
	FieldJobTitle,
	FieldExperienceDescription,
	FieldCurrentlyWorking,
	FieldTransportation,
}

// IsSheetField reports whether f is a known core field.
func IsSheetField(f Field) bool {
	for _, known := range SheetFieldOrder {
		if known == f {
			return true
		}
	}
	return false
}

// SheetFields is the part of a candidate owned by the spreadsheet import.
// Extensions carries track-specific attributes (commerce, climbing wall,
// accountant); keys are present only for the track that produced them.
type SheetFields struct {
	Name                  string            `json:"name"`
	Phone                 string            `json:"phone"`
	Position              string            `json:"position"`
	Email                 string            `json:"email"`
	Branch                string            `json:"branch"`
	Campaign              string            `json:"campaign"`
	ContactTime           string            `json:"contact_time"`
	City                  string            `json:"city"`
	HasExperience         string            `json:"has_experience"`
	JobTitle              string            `json:"job_title"`
	ExperienceDescription string            `json:"experience_description"`
	CurrentlyWorking      string            `json:"currently_working"`
	Transportation        string            `json:"transportation"`
	Extensions            map[string]string `json:"extensions,omitempty"`
}

// Get returns the value of a core field, "" for unknown fields.
func (f *SheetFields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldPhone:
		return f.Phone
	case FieldPosition:
		return f.Position
	case FieldEmail:
		return f.Email
	case FieldBranch:
		return f.Branch
	case FieldCampaign:
		return f.Campaign
	case FieldContactTime:
		return f.ContactTime
	case FieldCity:
		return f.City
	case FieldHasExperience:
		return f.HasExperience
	case FieldJobTitle:
		return f.JobTitle
	case FieldExperienceDescription:
		return f.ExperienceDescription
	case FieldCurrentlyWorking:
		return f.CurrentlyWorking
	case FieldTransportation:
		return f.Transportation
	}
	return ""
}

// Set assigns a core field. Unknown fields are ignored.
func (f *SheetFields) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldPhone:
		f.Phone = value
	case FieldPosition:
		f.Position = value
	case FieldEmail:
		f.Email = value
	case FieldBranch:
		f.Branch = value
	case FieldCampaign:
		f.Campaign = value
	case FieldContactTime:
		f.ContactTime = value
	case FieldCity:
		f.City = value
	case FieldHasExperience:
		f.HasExperience = value
	case FieldJobTitle:
		f.JobTitle = value
	case FieldExperienceDescription:
		f.ExperienceDescription = value
	case FieldCurrentlyWorking:
		f.CurrentlyWorking = value
	case FieldTransportation:
		f.Transportation = value
	}
}

// Clone returns a copy that does not share the Extensions map.
func (f SheetFields) Clone() SheetFields {
	out := f
	if f.Extensions != nil {
		out.Extensions = make(map[string]string, len(f.Extensions))
		for k, v := range f.Extensions {
			out.Extensions[k] = v
		}
	}
	return out
}

// Candidate is a stored recruitment candidate.
type Candidate struct {
	ID string `json:"id"`
	SheetFields
	Status         Status    `json:"status"`
	Notes          string    `json:"notes"`
	CVURL          string    `json:"cv_url,omitempty"`
	IsDeletedByApp bool      `json:"is_deleted_by_app"`
	CreatedAt      time.Time `json:"created_date"`
}

// Clone returns a deep copy of the candidate.
func (c Candidate) Clone() Candidate {
	out := c
	out.SheetFields = c.SheetFields.Clone()
	return out
}

// Update is a partial candidate update. Nil members are left untouched.
// Email is applied after Sheet when both are set.
type Update struct {
	Sheet          *SheetFields `json:"sheet,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	CVURL          *string      `json:"cv_url,omitempty"`
	Email          *string      `json:"email,omitempty"`
	Status         *Status      `json:"status,omitempty"`
	IsDeletedByApp *bool        `json:"is_deleted_by_app,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.Sheet == nil && u.Notes == nil && u.CVURL == nil && u.Email == nil &&
		u.Status == nil && u.IsDeletedByApp == nil
}

// Apply writes the update onto c.
func (u Update) Apply(c *Candidate) {
	if u.Sheet != nil {
		c.SheetFields = u.Sheet.Clone()
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
	if u.CVURL != nil {
		c.CVURL = *u.CVURL
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.IsDeletedByApp != nil {
		c.IsDeletedByApp = *u.IsDeletedByApp
	}
}

// Order selects the listing order of List.
type Order string

const (
	OrderCreatedAsc  Order = "created_date"
	OrderCreatedDesc Order = "-created_date"
)

// PhoneDigits extracts the digits of a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"candidate-sync/internal/sheet"
	"candidate-sync/internal/storage"
)

// Kind tells the orchestrator how to treat a tab's rows.
type Kind string

const (
	// KindCandidates rows are candidates merged by identity key.
	KindCandidates Kind = "candidates"
	// KindCVLinks rows attach a CV link to an existing candidate.
	KindCVLinks Kind = "cv_links"
)

// FieldCVURL is the CV link column of a cv_links tab.
const FieldCVURL storage.Field = "cv_url"

// defaultNotesColumn is where recruiters keep free-text notes in the sheets.
const defaultNotesColumn = 12

// ColumnRule locates one field in a tab. A fixed Index wins; otherwise the
// header candidates are searched, then the optional prefix fallback.
type ColumnRule struct {
	Index         *int     `json:"index,omitempty"`
	Headers       []string `json:"headers,omitempty"`
	Prefix        string   `json:"prefix,omitempty"`
	PrefixExclude []string `json:"prefix_exclude,omitempty"`
}

// ExtensionColumn is a track-specific attribute read from a fixed column.
type ExtensionColumn struct {
	Key   string `json:"key"`
	Index int    `json:"index"`
}

// TabLayout describes how one sheet tab maps onto candidates.
type TabLayout struct {
	Tab           string                       `json:"tab"`
	SheetName     string                       `json:"sheet_name"`
	Kind          Kind                         `json:"kind"`
	SkipBlankRows bool                         `json:"skip_blank_rows,omitempty"`
	StrictQuotes  bool                         `json:"strict_quotes,omitempty"` // reject the tab on an unterminated quote
	Columns       map[storage.Field]ColumnRule `json:"columns"`
	Extensions    []ExtensionColumn            `json:"extensions,omitempty"`
	NotesColumn   *int                         `json:"notes_column,omitempty"`
}

// ColumnIndex is a layout resolved against one tab's header row.
type ColumnIndex struct {
	fields     map[storage.Field]int
	notes      int
	extensions []ExtensionColumn
}

// Of returns the column of f, sheet.NotFound when the tab lacks it.
func (ci ColumnIndex) Of(f storage.Field) int {
	if i, ok := ci.fields[f]; ok {
		return i
	}
	return sheet.NotFound
}

// Resolve maps every field of the layout to a column of headerRow.
func Resolve(layout TabLayout, headerRow []string) ColumnIndex {
	headers := sheet.NormalizeHeaders(headerRow)
	ci := ColumnIndex{
		fields:     make(map[storage.Field]int, len(layout.Columns)),
		notes:      sheet.NotFound,
		extensions: layout.Extensions,
	}
	for f, rule := range layout.Columns {
		ci.fields[f] = rule.resolve(headers)
	}
	if layout.NotesColumn != nil {
		ci.notes = *layout.NotesColumn
	}
	return ci
}

func (r ColumnRule) resolve(headers []string) int {
	if r.Index != nil {
		return *r.Index
	}
	i := sheet.FindColumn(headers, r.Headers)
	if i == sheet.NotFound && r.Prefix != "" {
		i = sheet.FindColumnPrefix(headers, r.Prefix, r.PrefixExclude)
	}
	return i
}

// requiredFields are the columns a tab of the given kind cannot do without.
func requiredFields(k Kind) []storage.Field {
	if k == KindCVLinks {
		return []storage.Field{storage.FieldName, FieldCVURL}
	}
	return []storage.Field{storage.FieldName, storage.FieldPhone}
}

// missingRequired reports whether ci lacks a column rows cannot be mapped without.
func (ci ColumnIndex) missingRequired(k Kind) bool {
	for _, f := range requiredFields(k) {
		if ci.Of(f) == sheet.NotFound {
			return true
		}
	}
	return false
}

var cvLinkFields = map[storage.Field]bool{
	storage.FieldName:     true,
	storage.FieldJobTitle: true,
	storage.FieldEmail:    true,
	FieldCVURL:            true,
}

// Validate checks a layout set loaded from configuration.
func Validate(layouts []TabLayout) error {
	if len(layouts) == 0 {
		return errors.New("no tab layouts")
	}
	seen := make(map[string]bool, len(layouts))
	for _, l := range layouts {
		if l.Tab == "" || l.SheetName == "" {
			return fmt.Errorf("layout %q: tab and sheet_name are required", l.Tab)
		}
		if seen[l.Tab] {
			return fmt.Errorf("layout %q: duplicate tab", l.Tab)
		}
		seen[l.Tab] = true

		for f, rule := range l.Columns {
			switch l.Kind {
			case KindCandidates:
				if !storage.IsSheetField(f) || f == storage.FieldPosition {
					return fmt.Errorf("layout %q: unknown column %q", l.Tab, f)
				}
			case KindCVLinks:
				if !cvLinkFields[f] {
					return fmt.Errorf("layout %q: unknown column %q", l.Tab, f)
				}
			default:
				return fmt.Errorf("layout %q: unknown kind %q", l.Tab, l.Kind)
			}
			if rule.Index != nil && *rule.Index < 0 {
				return fmt.Errorf("layout %q: negative index for %q", l.Tab, f)
			}
			if rule.Index == nil && len(rule.Headers) == 0 && rule.Prefix == "" {
				return fmt.Errorf("layout %q: column %q has no index, headers or prefix", l.Tab, f)
			}
		}
		for _, f := range requiredFields(l.Kind) {
			if _, ok := l.Columns[f]; !ok {
				return fmt.Errorf("layout %q: required column %q missing", l.Tab, f)
			}
		}
		for _, e := range l.Extensions {
			if e.Key == "" || e.Index < 0 {
				return fmt.Errorf("layout %q: invalid extension column %+v", l.Tab, e)
			}
			if storage.IsSheetField(storage.Field(e.Key)) {
				return fmt.Errorf("layout %q: extension %q shadows a core field", l.Tab, e.Key)
			}
		}
	}
	return nil
}

// LoadLayouts reads a JSON array of layouts replacing the built-in ones.
func LoadLayouts(path string) ([]TabLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	var layouts []TabLayout
	if err := json.Unmarshal(data, &layouts); err != nil {
		return nil, fmt.Errorf("parse layouts %s: %w", path, err)
	}
	if err := Validate(layouts); err != nil {
		return nil, err
	}
	return layouts, nil
}

func idx(i int) *int { return &i }

func fixed(i int) ColumnRule { return ColumnRule{Index: idx(i)} }

func byHeaders(h ...string) ColumnRule { return ColumnRule{Headers: h} }

// headerColumns are the header-driven rules shared by every candidate tab.
func headerColumns() map[storage.Field]ColumnRule {
	return map[storage.Field]ColumnRule{
		storage.FieldName: {
			Headers:       []string{"שם מועמד", "שם מלא", "מועמד"},
			Prefix:        "שם",
			PrefixExclude: []string{"קמפיין"},
		},
		storage.FieldPhone:                 byHeaders("טלפון", "נייד", "סלולרי"),
		storage.FieldEmail:                 byHeaders("אימייל", "דואר", "מייל"),
		storage.FieldBranch:                byHeaders("מודעה", "סניף", "מועמדות לסניף"),
		storage.FieldCampaign:              byHeaders("שם הקמפיין", "קמפיין"),
		storage.FieldContactTime:           byHeaders("תאריך ושעה", "תאריך", "שעה", "תאיך כניסה"),
		storage.FieldCity:                  byHeaders("ישוב מגורים", "מגורים", "עיר", "ישוב"),
		storage.FieldHasExperience:         byHeaders("האם יש ניסיון", "ניסיון"),
		storage.FieldJobTitle:              byHeaders("מועמד למשרה", "משרה", "תפקיד"),
		storage.FieldExperienceDescription: byHeaders("תאור קצר ניסיון", "תיאור", "תאור", "תאור קצר"),
		storage.FieldCurrentlyWorking:      byHeaders("עובד כרגע?", "עובד כרגע"),
		storage.FieldTransportation:        byHeaders("רכב/ניידות", "רכב", "ניידות", "מרחק"),
	}
}

func candidateTab(tab, sheetName string, overrides map[storage.Field]ColumnRule, ext ...ExtensionColumn) TabLayout {
	cols := headerColumns()
	for f, r := range overrides {
		cols[f] = r
	}
	return TabLayout{
		Tab:         tab,
		SheetName:   sheetName,
		Kind:        KindCandidates,
		Columns:     cols,
		Extensions:  ext,
		NotesColumn: idx(defaultNotesColumn),
	}
}

// DefaultLayouts is the layout of the production recruitment spreadsheet.
func DefaultLayouts() []TabLayout {
	return []TabLayout{
		candidateTab("general", "עובדים כללי", nil),
		candidateTab("accountant_manager", `מנהח"ש`,
			map[storage.Field]ColumnRule{
				storage.FieldName:        fixed(1),
				storage.FieldPhone:       fixed(2),
				storage.FieldEmail:       fixed(8),
				storage.FieldContactTime: fixed(0),
				storage.FieldCity:        fixed(7),
			},
			ExtensionColumn{"accountant_certificate", 3},
			ExtensionColumn{"accountant_excel_experience", 4},
			ExtensionColumn{"accountant_comax_experience", 5},
			ExtensionColumn{"accountant_role_experience", 6},
			ExtensionColumn{"accountant_two_years_experience", 9},
		),
		candidateTab("segan_beer_yaakov", "סגן באר יעקב",
			map[storage.Field]ColumnRule{storage.FieldName: fixed(2)},
		),
		candidateTab("manager_commerce", "מנהל סחר", nil,
			ExtensionColumn{"commerce_experience", 2},
			ExtensionColumn{"comax_proficiency", 3},
			ExtensionColumn{"planogram_skills", 4},
			ExtensionColumn{"supplier_negotiation", 5},
			ExtensionColumn{"pnl_analysis", 6},
			ExtensionColumn{"availability", 7},
		),
		candidateTab("climbing_wall", "קיר טיפוס",
			map[storage.Field]ColumnRule{
				storage.FieldName:        fixed(2),
				storage.FieldPhone:       fixed(3),
				storage.FieldEmail:       fixed(10),
				storage.FieldBranch:      fixed(1),
				storage.FieldContactTime: fixed(0),
				storage.FieldCity:        fixed(4),
			},
			ExtensionColumn{"instruction_experience", 5},
			ExtensionColumn{"instruction_experience_details", 6},
			ExtensionColumn{"physical_activity_experience", 7},
			ExtensionColumn{"physical_activity_details", 8},
			ExtensionColumn{"work_hours_availability", 9},
		),
		{
			Tab:       "cv_update",
			SheetName: "קורות חיים",
			Kind:      KindCVLinks,
			Columns: map[storage.Field]ColumnRule{
				storage.FieldName:     fixed(0),
				storage.FieldJobTitle: fixed(1),
				FieldCVURL:            fixed(2),
				storage.FieldEmail:    fixed(3),
			},
		},
	}
}

package importer

import "time"

// Reason explains why a tab or row was not imported.
type Reason string

const (
	ReasonFetchFailed            Reason = "fetch_failed"
	ReasonNoDataRows             Reason = "no_data_rows"
	ReasonMissingRequiredColumns Reason = "missing_required_columns"
	ReasonMissingRequired        Reason = "missing_required"
	ReasonInvalidPhone           Reason = "invalid_phone"
	ReasonDuplicate              Reason = "duplicate"
	ReasonDeletedByApp           Reason = "deleted_by_app"
	ReasonNoMatch                Reason = "no_match"
	ReasonMalformedCSV           Reason = "malformed_csv"
)

// TabReport summarizes one tab of a run. Created and Updated count
// successful writes only.
type TabReport struct {
	Tab         string         `json:"tab"`
	SheetName   string         `json:"sheet_name"`
	FetchedRows int            `json:"fetched_rows"`
	Created     int            `json:"created"`
	Updated     int            `json:"updated"`
	Unchanged   int            `json:"unchanged"`
	Skipped     int            `json:"skipped"`
	Reasons     map[Reason]int `json:"reasons"`
}

func newTabReport(l TabLayout) *TabReport {
	return &TabReport{Tab: l.Tab, SheetName: l.SheetName, Reasons: map[Reason]int{}}
}

// skipRow records a row that was dropped.
func (t *TabReport) skipRow(r Reason) {
	t.Skipped++
	t.Reasons[r]++
}

// fail records a tab-level problem; rows is the number of data rows lost.
func (t *TabReport) fail(r Reason, rows int) {
	t.Skipped += rows
	t.Reasons[r]++
}

// Report is the outcome of one import run.
type Report struct {
	RunID      string      `json:"run_id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Created    int         `json:"created"`
	Updated    int         `json:"updated"`
	Unchanged  int         `json:"unchanged"`
	Skipped    int         `json:"skipped"`
	Errors     int         `json:"errors"`
	Tabs       []TabReport `json:"tabs"`
}

// Reasons sums the skip reasons of all tabs.
func (r *Report) Reasons() map[Reason]int {
	out := map[Reason]int{}
	for _, t := range r.Tabs {
		for k, v := range t.Reasons {
			out[k] += v
		}
	}
	return out
}

// Tab returns the report of the named tab, nil when absent.
func (r *Report) Tab(tab string) *TabReport {
	for i := range r.Tabs {
		if r.Tabs[i].Tab == tab {
			return &r.Tabs[i]
		}
	}
	return nil
}

func (r *Report) total() {
	r.Created, r.Updated, r.Unchanged, r.Skipped = 0, 0, 0, 0
	for _, t := range r.Tabs {
		r.Created += t.Created
		r.Updated += t.Updated
		r.Unchanged += t.Unchanged
		r.Skipped += t.Skipped
	}
}

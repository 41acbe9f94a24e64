package importer

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
)

var reasonLabels = map[Reason]string{
	ReasonDuplicate:              "כפולים",
	ReasonMissingRequired:        "חסר שם/טלפון",
	ReasonInvalidPhone:           "טלפון לא תקין",
	ReasonMissingRequiredColumns: "חסרות עמודות חובה",
	ReasonFetchFailed:            "כשל בקבלת הנתונים",
	ReasonNoDataRows:             "ללא נתונים בגליון",
	ReasonDeletedByApp:           "נמחקו באפליקציה",
	ReasonNoMatch:                "לא נמצא מועמד",
	ReasonMalformedCSV:           "קובץ CSV פגום",
}

// ReasonLabel is the Hebrew label recruiters see for a skip reason.
func ReasonLabel(r Reason) string {
	if l, ok := reasonLabels[r]; ok {
		return l
	}
	return string(r)
}

var reportHeader = []string{"Tab", "Sheet", "Rows", "Created", "Updated", "Unchanged", "Skipped", "Reasons"}

const reportSheet = "Import Report"

// WriteXLSX renders the report as a spreadsheet: a header row, one row per
// tab and a totals row.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1") //nolint:errcheck
	f.SetActiveSheet(index)
	f.SetSheetView(reportSheet, 0, &excelize.ViewOptions{RightToLeft: boolPtr(true)}) //nolint:errcheck

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := setRow(f, 1, toAny(reportHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	row := 2
	for _, t := range r.Tabs {
		values := []interface{}{t.Tab, t.SheetName, t.FetchedRows, t.Created, t.Updated, t.Unchanged, t.Skipped, formatReasons(t.Reasons)}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}
	total := []interface{}{"total", "", "", r.Created, r.Updated, r.Unchanged, r.Skipped, formatReasons(r.Reasons())}
	if err := setRow(f, row, total); err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), headerStyle); err != nil {
		return fmt.Errorf("failed to set totals style: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "A", "B", 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "H", "H", 60); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to set row %d: %w", row, err)
	}
	return nil
}

// formatReasons renders reasons as "label: n" pairs in a stable order.
func formatReasons(reasons map[Reason]int) string {
	keys := make([]string, 0, len(reasons))
	for k, v := range reasons {
		if v > 0 {
			keys = append(keys, string(k))
		}
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %d", ReasonLabel(Reason(k)), reasons[Reason(k)])
	}
	return out
}

func toAny(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

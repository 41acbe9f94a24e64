package importer

import (
	"strings"

	"candidate-sync/internal/sheet"
	"candidate-sync/internal/storage"
)

// Incoming is one mapped sheet row on its way to the merge engine.
type Incoming struct {
	storage.SheetFields
	SheetNotes string
}

// MapRow turns a data row into an Incoming record. The returned Reason is
// empty when the row was mapped; otherwise the row must be dropped.
func MapRow(row []string, ci ColumnIndex, layout TabLayout) (Incoming, Reason) {
	var in Incoming

	in.Name = cell(row, ci.Of(storage.FieldName))
	in.Phone = cell(row, ci.Of(storage.FieldPhone))
	if in.Name == "" || in.Phone == "" {
		return Incoming{}, ReasonMissingRequired
	}
	if storage.PhoneDigits(in.Phone) == "" {
		return Incoming{}, ReasonInvalidPhone
	}

	for _, f := range storage.SheetFieldOrder {
		switch f {
		case storage.FieldName, storage.FieldPhone:
			continue
		case storage.FieldPosition:
			in.Position = layout.Tab
		default:
			in.Set(f, cell(row, ci.Of(f)))
		}
	}

	if len(ci.extensions) > 0 {
		in.Extensions = make(map[string]string, len(ci.extensions))
		for _, e := range ci.extensions {
			in.Extensions[e.Key] = cell(row, e.Index)
		}
	}

	in.SheetNotes = cell(row, ci.notes)
	return in, ""
}

// cell returns the trimmed value at i, "" when the column is absent or the
// row is short.
func cell(row []string, i int) string {
	if i == sheet.NotFound || i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	r := &Report{
		Created: 2, Updated: 1, Skipped: 3,
		Tabs: []TabReport{
			{Tab: "general", SheetName: "עובדים כללי", FetchedRows: 5, Created: 2, Updated: 1, Skipped: 3,
				Reasons: map[Reason]int{ReasonDuplicate: 1, ReasonMissingRequired: 2}},
			{Tab: "climbing_wall", SheetName: "קיר טיפוס", Reasons: map[Reason]int{ReasonFetchFailed: 1}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, "general", rows[1][0])
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "כפולים: 1, חסר שם/טלפון: 2", rows[1][7])
	assert.Equal(t, "כשל בקבלת הנתונים: 1", rows[2][7])
	assert.Equal(t, "total", rows[3][0])
	assert.Equal(t, "2", rows[3][3])
}

func TestReasonLabel(t *testing.T) {
	assert.Equal(t, "טלפון לא תקין", ReasonLabel(ReasonInvalidPhone))
	assert.Equal(t, "something_new", ReasonLabel("something_new"))
}

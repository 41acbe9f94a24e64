package api

import (
	"errors"
	"fmt"
	"net/http"

	"candidate-sync/internal/importer"

	"go.uber.org/zap"
)

type ImportResponse struct {
	Success bool             `json:"success"`
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  int              `json:"errors"`
	Message string           `json:"message"`
	Report  *importer.Report `json:"report"`
}

// RunImportHandler runs the sheet import synchronously
// @Summary Run import
// @Description Fetch every configured sheet tab and reconcile it with the stored candidates
// @Tags import
// @Produce json
// @Success 200 {object} ImportResponse
// @Failure 409 {object} Result
// @Failure 500 {object} Result
// @Router /import/run [post]
func (a *API) RunImportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := a.importer.Run(r.Context())
	switch {
	case errors.Is(err, importer.ErrRunInProgress):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		a.logger.Error("Import failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{
		Success: true,
		Created: report.Created,
		Updated: report.Updated,
		Errors:  report.Errors,
		Message: fmt.Sprintf("סנכרון הצליח. %d מועמדים נוספו", report.Created),
		Report:  report,
	})
}

// LastReportHandler returns the report of the latest run
// @Summary Last import report
// @Tags import
// @Produce json
// @Success 200 {object} importer.Report
// @Failure 404 {object} Result
// @Router /import/report [get]
func (a *API) LastReportHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := a.lastReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ReportXLSXHandler exports the latest report as a spreadsheet
// @Summary Last import report as XLSX
// @Tags import
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 404 {object} Result
// @Router /import/report.xlsx [get]
func (a *API) ReportXLSXHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := a.lastReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="import-report.xlsx"`)
	if err := importer.WriteXLSX(w, report); err != nil {
		a.logger.Error("Failed to write report workbook", zap.Error(err))
	}
}

func (a *API) lastReport(w http.ResponseWriter, r *http.Request) (*importer.Report, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	if a.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return nil, false
	}
	report, err := a.reports.Last(r.Context())
	if errors.Is(err, importer.ErrNoReport) {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		a.logger.Error("Failed to load import report", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return nil, false
	}
	return report, true
}

package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Import
	mux.HandleFunc("/api/import/run", a.RunImportHandler)
	mux.HandleFunc("/api/import/report", a.LastReportHandler)
	mux.HandleFunc("/api/import/report.xlsx", a.ReportXLSXHandler)

	// CV links
	mux.HandleFunc("/api/webhook/cv", a.WebhookCVHandler)
	mux.HandleFunc("/api/cv/view", a.ViewCVHandler)
	mux.HandleFunc("/api/cv/text", a.CVTextHandler)

	// Candidates
	mux.HandleFunc("/api/candidates", a.CandidatesHandler)
	mux.HandleFunc("/api/candidates/{id}", a.UpdateCandidateHandler)
	mux.HandleFunc("/api/candidates/{id}/dismiss", a.DismissCandidateHandler)

	return mux
}

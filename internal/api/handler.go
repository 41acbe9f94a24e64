package api

import (
	"context"
	"encoding/json"
	"net/http"

	"candidate-sync/internal/cv"
	"candidate-sync/internal/importer"
	"candidate-sync/internal/storage"

	"go.uber.org/zap"
)

// ImportRunner runs one import pass.
type ImportRunner interface {
	Run(ctx context.Context) (*importer.Report, error)
}

type API struct {
	store      storage.Store
	importer   ImportRunner
	reports    *importer.ReportStore
	cvParser   *cv.CVParser
	webhookKey string
	logger     *zap.Logger
}

// Deps are the collaborators of the HTTP layer. Reports and CVParser may be
// nil; the endpoints using them then answer 503.
type Deps struct {
	Store      storage.Store
	Importer   ImportRunner
	Reports    *importer.ReportStore
	CVParser   *cv.CVParser
	WebhookKey string
	Logger     *zap.Logger
}

func NewAPI(d Deps) *API {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		store:      d.Store,
		importer:   d.Importer,
		reports:    d.Reports,
		cvParser:   d.CVParser,
		webhookKey: d.WebhookKey,
		logger:     logger,
	}
}

// Result is the envelope of every JSON answer that is not a plain listing.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Result{Success: false, Error: msg})
}

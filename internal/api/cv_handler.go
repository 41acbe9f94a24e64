package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"candidate-sync/internal/cv"
	"candidate-sync/internal/matcher"
	"candidate-sync/internal/storage"

	"go.uber.org/zap"
)

// WebhookRequest is posted by the form service when a candidate uploads a CV.
type WebhookRequest struct {
	CandidateName string `json:"candidate_name"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	JobTitle      string `json:"job_title"`
	CVURL         string `json:"cv_url"`
}

type WebhookResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	CandidateID   string `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	Position      string `json:"position"`
}

type WebhookNotFound struct {
	Success          bool   `json:"success"`
	Error            string `json:"error"`
	SearchedName     string `json:"searchedName"`
	SearchedJobTitle string `json:"searchedJobTitle"`
}

// CVRequest names a stored CV either by candidate or by its link. Links that
// no candidate carries are refused.
type CVRequest struct {
	CandidateID string `json:"candidate_id,omitempty"`
	CVURL       string `json:"cv_url,omitempty"`
}

var errUnknownCV = errors.New("unknown CV")

// WebhookCVHandler attaches a CV link to the best matching candidate
// @Summary CV webhook
// @Description Match the submitted name/email/job title to a stored candidate and set its CV link
// @Tags cv
// @Accept json
// @Produce json
// @Param api_key header string true "Webhook API key"
// @Param request body WebhookRequest true "CV submission"
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Failure 404 {object} WebhookNotFound
// @Failure 500 {object} Result
// @Router /webhook/cv [post]
func (a *API) WebhookCVHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, api_key")
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if a.webhookKey == "" {
		writeError(w, http.StatusServiceUnavailable, "webhook not configured")
		return
	}
	// Header.Get canonicalizes, so this also covers API_KEY.
	key := r.Header.Get("api_key")
	if key == "" {
		key = r.Header.Get("Api-Key")
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(a.webhookKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid or missing API key")
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		name = strings.TrimSpace(req.Name)
	}
	jobTitle := strings.TrimSpace(req.JobTitle)
	cvURL := strings.TrimSpace(req.CVURL)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: candidate_name")
		return
	}
	if cvURL == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: cv_url")
		return
	}

	log := a.logger.With(zap.String("name", name), zap.String("job_title", jobTitle))

	candidates, err := a.store.List(r.Context(), storage.OrderCreatedDesc)
	if err != nil {
		log.Error("Failed to load candidates", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	found, ok := matcher.FindCandidate(candidates, matcher.Query{
		Name:     name,
		Email:    strings.TrimSpace(req.Email),
		JobTitle: jobTitle,
	})
	if !ok {
		log.Info("No candidate matched CV webhook")
		writeJSON(w, http.StatusNotFound, WebhookNotFound{
			Success:          false,
			Error:            "לא נמצא מועמד תואם",
			SearchedName:     name,
			SearchedJobTitle: jobTitle,
		})
		return
	}

	if _, err := a.store.Update(r.Context(), found.ID, storage.Update{CVURL: &cvURL}); err != nil {
		log.Error("Failed to store CV link", zap.String("candidate_id", found.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update candidate")
		return
	}

	log.Info("CV link stored", zap.String("candidate_id", found.ID))
	writeJSON(w, http.StatusOK, WebhookResponse{
		Success:       true,
		Message:       "קורות חיים עודכנו בהצלחה",
		CandidateID:   found.ID,
		CandidateName: found.Name,
		Position:      found.Position,
	})
}

// ViewCVHandler proxies a CV file so the browser can display it inline
// @Summary View CV
// @Tags cv
// @Accept json
// @Produce octet-stream
// @Param request body CVRequest true "Candidate id or stored CV link"
// @Success 200 {file} file
// @Failure 400 {object} Result
// @Failure 404 {object} Result
// @Failure 502 {object} Result
// @Router /cv/view [post]
func (a *API) ViewCVHandler(w http.ResponseWriter, r *http.Request) {
	cvURL, ok := a.cvRequest(w, r)
	if !ok {
		return
	}

	f, err := a.cvParser.Open(r.Context(), cvURL)
	if err != nil {
		a.logger.Warn("Failed to fetch CV", zap.String("cv_url", cvURL), zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to fetch file")
		return
	}
	defer f.Body.Close()

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", f.Filename))
	w.Header().Set("Cache-Control", "no-cache")
	if f.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprint(f.Size))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f.Body); err != nil {
		a.logger.Warn("CV stream interrupted", zap.String("cv_url", cvURL), zap.Error(err))
	}
}

// CVTextHandler downloads a CV and returns its plain text
// @Summary Extract CV text
// @Tags cv
// @Accept json
// @Produce json
// @Param request body CVRequest true "Candidate id or stored CV link"
// @Success 200 {object} cv.ParsedCV
// @Failure 400 {object} Result
// @Failure 404 {object} Result
// @Failure 415 {object} Result
// @Failure 502 {object} Result
// @Router /cv/text [post]
func (a *API) CVTextHandler(w http.ResponseWriter, r *http.Request) {
	cvURL, ok := a.cvRequest(w, r)
	if !ok {
		return
	}

	parsed, err := a.cvParser.ParseURL(r.Context(), cvURL)
	switch {
	case errors.Is(err, cv.ErrFetchFailed):
		writeError(w, http.StatusBadGateway, "Failed to fetch file")
		return
	case errors.Is(err, cv.ErrUnsupportedType):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	case err != nil:
		a.logger.Error("Failed to extract CV text", zap.String("cv_url", cvURL), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to parse CV")
		return
	}
	writeJSON(w, http.StatusOK, parsed)
}

// cvRequest reads candidate_id or cv_url from the JSON body, or from the
// query on GET, and returns the CV link stored for it.
func (a *API) cvRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req CVRequest
	switch r.Method {
	case http.MethodGet:
		req.CandidateID = r.URL.Query().Get("candidate_id")
		req.CVURL = r.URL.Query().Get("cv_url")
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return "", false
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	req.CandidateID = strings.TrimSpace(req.CandidateID)
	req.CVURL = strings.TrimSpace(req.CVURL)
	if req.CandidateID == "" && req.CVURL == "" {
		writeError(w, http.StatusBadRequest, "Missing cv_url parameter")
		return "", false
	}
	if a.cvParser == nil {
		writeError(w, http.StatusServiceUnavailable, "CV access not configured")
		return "", false
	}

	cvURL, err := a.storedCVURL(r.Context(), req)
	if errors.Is(err, errUnknownCV) {
		writeError(w, http.StatusNotFound, "CV not found")
		return "", false
	}
	if err != nil {
		a.logger.Error("Failed to look up CV", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to look up CV")
		return "", false
	}
	return cvURL, true
}

// storedCVURL only ever returns a link taken from the store.
func (a *API) storedCVURL(ctx context.Context, req CVRequest) (string, error) {
	if req.CandidateID != "" {
		c, err := a.store.Get(ctx, req.CandidateID)
		if errors.Is(err, storage.ErrNotFound) {
			return "", errUnknownCV
		}
		if err != nil {
			return "", err
		}
		if c.CVURL == "" || (req.CVURL != "" && req.CVURL != c.CVURL) {
			return "", errUnknownCV
		}
		return c.CVURL, nil
	}

	candidates, err := a.store.List(ctx, storage.OrderCreatedDesc)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if c.CVURL != "" && c.CVURL == req.CVURL {
			return c.CVURL, nil
		}
	}
	return "", errUnknownCV
}

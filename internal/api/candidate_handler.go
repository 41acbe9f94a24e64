package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"candidate-sync/internal/storage"

	"go.uber.org/zap"
)

// CandidatePatch is the recruiter-editable part of a candidate.
type CandidatePatch struct {
	Status *storage.Status `json:"status,omitempty"`
	Notes  *string         `json:"notes,omitempty"`
}

type PurgeResponse struct {
	Success bool `json:"success"`
	storage.PurgeResult
	Message string `json:"message"`
}

// CandidatesHandler lists or purges candidates
// @Summary List or purge candidates
// @Description GET lists candidates (newest first, optionally of one position). DELETE removes every candidate of a position.
// @Tags candidates
// @Produce json
// @Param position query string false "Position (required for DELETE)"
// @Param include_deleted query bool false "Include candidates dismissed in the app"
// @Success 200 {array} storage.Candidate
// @Failure 400 {object} Result
// @Failure 500 {object} Result
// @Router /candidates [get]
// @Router /candidates [delete]
func (a *API) CandidatesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listCandidates(w, r)
	case http.MethodDelete:
		a.purgeCandidates(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) listCandidates(w http.ResponseWriter, r *http.Request) {
	position := strings.TrimSpace(r.URL.Query().Get("position"))
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	var candidates []storage.Candidate
	var err error
	if position == "" {
		candidates, err = a.store.List(r.Context(), storage.OrderCreatedDesc)
	} else {
		candidates, err = a.store.ListByPosition(r.Context(), position)
	}
	if err != nil {
		a.logger.Error("Failed to list candidates", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	out := make([]storage.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.IsDeletedByApp && !includeDeleted {
			continue
		}
		out = append(out, c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) purgeCandidates(w http.ResponseWriter, r *http.Request) {
	position := strings.TrimSpace(r.URL.Query().Get("position"))
	if position == "" {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}
	res, err := storage.PurgePosition(r.Context(), a.store, position, a.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PurgeResponse{
		Success:     true,
		PurgeResult: res,
		Message:     fmt.Sprintf("נמחקו %d מועמדים", res.Deleted),
	})
}

// UpdateCandidateHandler changes status and/or notes
// @Summary Update candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path string true "Candidate ID"
// @Param patch body CandidatePatch true "Fields to change"
// @Success 200 {object} storage.Candidate
// @Failure 400 {object} Result
// @Failure 404 {object} Result
// @Router /candidates/{id} [patch]
func (a *API) UpdateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var patch CandidatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", *patch.Status))
		return
	}
	a.applyUpdate(w, r, storage.Update{Status: patch.Status, Notes: patch.Notes})
}

// DismissCandidateHandler hides a candidate from the app for good
// @Summary Dismiss candidate
// @Description Marks the candidate deleted by the app; later imports never revive or update it
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} storage.Candidate
// @Failure 404 {object} Result
// @Router /candidates/{id}/dismiss [post]
func (a *API) DismissCandidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	deleted := true
	status := storage.StatusNotRelevant
	a.applyUpdate(w, r, storage.Update{IsDeletedByApp: &deleted, Status: &status})
}

func (a *API) applyUpdate(w http.ResponseWriter, r *http.Request, u storage.Update) {
	id := r.PathValue("id")
	c, err := a.store.Update(r.Context(), id, u)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	if err != nil {
		a.logger.Error("Failed to update candidate", zap.String("candidate_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update candidate")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

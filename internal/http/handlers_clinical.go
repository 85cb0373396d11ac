package httpx

import (
	"errors"
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// ClinicalHandlers provides HTTP handlers for postings and logbooks.
type ClinicalHandlers struct {
	Svc *service.ClinicalService
}

// ListPostings handles GET /clinical/postings/me. Students see their own
// postings; staff see the whole college.
func (h *ClinicalHandlers) ListPostings(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	postings, err := h.Svc.ListPostings(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, postings)
}

// CreatePosting handles POST /clinical/postings.
func (h *ClinicalHandlers) CreatePosting(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreatePostingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	posting, err := h.Svc.CreatePosting(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, posting)
}

type postingStatusRequest struct {
	Status model.PostingStatus `json:"status"`
}

// SetPostingStatus handles PUT /clinical/postings/{id}/status.
func (h *ClinicalHandlers) SetPostingStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req postingStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	posting, err := h.Svc.SetPostingStatus(r.Context(), caller, id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, posting)
}

// ListLogbookEntries handles GET /clinical/logbooks. Query parameters: user,
// posting, status, limit, offset. Students are pinned to their own entries
// regardless of the user filter.
func (h *ClinicalHandlers) ListLogbookEntries(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	opts := model.LogbookListOptions{
		UserID:    optStringQuery(r, "user"),
		PostingID: optStringQuery(r, "posting"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	}
	if raw := optStringQuery(r, "status"); raw != nil {
		status, valid := model.ParseLogbookStatus(*raw)
		if !valid {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     errors.New("status is not a recognized logbook status"),
			})
			return
		}
		opts.Status = &status
	}

	entries, err := h.Svc.ListLogbookEntries(r.Context(), caller, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

// CreateLogbookEntry handles POST /clinical/logbooks.
func (h *ClinicalHandlers) CreateLogbookEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	var req model.CreateLogbookEntryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	entry, err := h.Svc.CreateLogbookEntry(r.Context(), caller, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, entry)
}

// GetLogbookEntry handles GET /clinical/logbooks/{id}.
func (h *ClinicalHandlers) GetLogbookEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.Svc.GetLogbookEntry(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

// SubmitLogbookEntry handles POST /clinical/logbooks/{id}/submit.
func (h *ClinicalHandlers) SubmitLogbookEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.Svc.SubmitLogbookEntry(r.Context(), caller, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

// ReviewLogbookEntry handles POST /clinical/logbooks/{id}/review.
func (h *ClinicalHandlers) ReviewLogbookEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.ReviewLogbookEntryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	entry, err := h.Svc.ReviewLogbookEntry(r.Context(), caller, id, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

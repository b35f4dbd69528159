package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/brunolandim/back-jurix/internal/engine/documents"
	"github.com/brunolandim/back-jurix/internal/engine/sharelinks"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type DocumentHandler struct {
	documents  *documents.Service
	shareLinks *sharelinks.Service
}

func NewDocumentHandler(docSvc *documents.Service, linkSvc *sharelinks.Service) *DocumentHandler {
	return &DocumentHandler{documents: docSvc, shareLinks: linkSvc}
}

func (h *DocumentHandler) ListByCase(w http.ResponseWriter, r *http.Request) {
	caseID := r.URL.Query().Get("caseId")
	if caseID == "" {
		errors.Write(w, errors.Validation("caseId query parameter is required"))
		return
	}

	docs, err := h.documents.ListByCase(caseID, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req documents.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	doc, err := h.documents.Create(&req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req documents.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	doc, err := h.documents.Update(param(r, "document_id"), &req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Approve marks a reviewed document as received. When the approval completes
// the case's document set, its active share link is retired.
func (h *DocumentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Approve(param(r, "document_id"), authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}

	if err := h.shareLinks.CheckAndExpire(doc.CaseID); err != nil {
		// The approval already happened; a failed expiry check only delays
		// the link retirement until the next approval or cleanup run.
		log.Error().Err(err).Str("caseId", doc.CaseID).Msg("share link expiry check failed")
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req documents.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	doc, err := h.documents.Reject(param(r, "document_id"), &req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Delete(param(r, "document_id"), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

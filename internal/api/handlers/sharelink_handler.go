package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/sharelinks"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/storage"
)

type ShareLinkHandler struct {
	shareLinks *sharelinks.Service
	storage    *storage.S3Storage
	appURL     string
}

func NewShareLinkHandler(svc *sharelinks.Service, store *storage.S3Storage, appURL string) *ShareLinkHandler {
	return &ShareLinkHandler{shareLinks: svc, storage: store, appURL: appURL}
}

type shareLinkResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	CaseID    string `json:"case_id"`
	URL       string `json:"url"`
	IsExpired bool   `json:"is_expired"`
	CreatedAt int64  `json:"created_at"`
}

func (h *ShareLinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sharelinks.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	link, err := h.shareLinks.Create(&req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &shareLinkResponse{
		ID:        link.ID,
		Token:     link.Token,
		CaseID:    link.CaseID,
		URL:       h.appURL + "/share/" + link.Token,
		IsExpired: link.IsExpired,
		CreatedAt: link.CreatedAt,
	})
}

func (h *ShareLinkHandler) ListByCase(w http.ResponseWriter, r *http.Request) {
	caseID := r.URL.Query().Get("caseId")
	if caseID == "" {
		errors.Write(w, errors.Validation("caseId query parameter is required"))
		return
	}

	links, err := h.shareLinks.ListByCase(caseID, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *ShareLinkHandler) Expire(w http.ResponseWriter, r *http.Request) {
	caseID := r.URL.Query().Get("caseId")
	if caseID == "" {
		errors.Write(w, errors.Validation("caseId query parameter is required"))
		return
	}

	if err := h.shareLinks.Expire(param(r, "link_id"), caseID, authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetByToken serves the public upload page: the document set plus case and
// lawyer labels. No authentication, the token is the credential.
func (h *ShareLinkHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	link, err := h.shareLinks.GetByToken(param(r, "token"))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// PresignUpload hands the client a pre-signed PUT URL for one of the link's
// documents. The token is validated before any storage work happens.
func (h *ShareLinkHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentID  string `json:"document_id"`
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}
	if req.FileName == "" {
		errors.Write(w, errors.Validation("file_name is required"))
		return
	}

	link, err := h.shareLinks.GetByToken(param(r, "token"))
	if err != nil {
		errors.Write(w, err)
		return
	}

	found := false
	for _, doc := range link.Documents {
		if doc.ID == req.DocumentID {
			found = true
			break
		}
	}
	if !found {
		errors.Write(w, errors.NotFound("Document", req.DocumentID))
		return
	}

	key := storage.ObjectKey(link.CaseID, "documents", req.FileName)
	upload, err := h.storage.PresignUpload(r.Context(), key, req.ContentType)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

// ConfirmUpload records that the client finished a pre-signed upload, moving
// the document into review.
func (h *ShareLinkHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentID string `json:"document_id"`
		FileURL    string `json:"file_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}
	if req.FileURL == "" {
		errors.Write(w, errors.Validation("file_url is required"))
		return
	}

	doc, err := h.shareLinks.RecordUpload(param(r, "token"), req.DocumentID, req.FileURL)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/storage"
)

// Folders clients may upload into. Document uploads go through share links.
var uploadFolders = map[string]bool{
	"profile-photos": true,
	"logos":          true,
}

const maxDirectUpload = 5 << 20 // 5 MiB, profile photos and logos only

type UploadHandler struct {
	storage *storage.S3Storage
}

func NewUploadHandler(store *storage.S3Storage) *UploadHandler {
	return &UploadHandler{storage: store}
}

func (h *UploadHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Folder      string `json:"folder"`
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
	if !uploadFolders[req.Folder] {
		errors.Write(w, errors.Validation("Invalid upload folder"))
		return
	}

	authCtx := authContext(r)
	key := storage.ObjectKey(authCtx.OrganizationID, req.Folder, req.FileName)
	upload, err := h.storage.PresignUpload(r.Context(), key, req.ContentType)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

// Upload accepts a small base64 payload directly, used for profile photos
// and organization logos where a presign round trip is not worth it.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Folder      string `json:"folder"`
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
		Data        string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}
	if req.FileName == "" || req.Data == "" {
		errors.Write(w, errors.Validation("file_name and data are required"))
		return
	}
	if !uploadFolders[req.Folder] {
		errors.Write(w, errors.Validation("Invalid upload folder"))
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		errors.Write(w, errors.Validation("data must be base64 encoded"))
		return
	}
	if len(data) > maxDirectUpload {
		errors.Write(w, errors.Validation("File too large for direct upload"))
		return
	}

	authCtx := authContext(r)
	key := storage.ObjectKey(authCtx.OrganizationID, req.Folder, req.FileName)
	fileURL, err := h.storage.Upload(r.Context(), key, req.ContentType, data)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file_url": fileURL})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/lawyers"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type LawyerHandler struct {
	lawyers *lawyers.Service
}

func NewLawyerHandler(svc *lawyers.Service) *LawyerHandler {
	return &LawyerHandler{lawyers: svc}
}

func (h *LawyerHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	list, err := h.lawyers.List(authContext(r), activeOnly)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *LawyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	lawyer, err := h.lawyers.GetByID(param(r, "lawyer_id"), authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lawyer)
}

func (h *LawyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req lawyers.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	lawyer, err := h.lawyers.Create(&req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lawyer)
}

func (h *LawyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req lawyers.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	lawyer, err := h.lawyers.Update(param(r, "lawyer_id"), &req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lawyer)
}

func (h *LawyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.lawyers.Delete(param(r, "lawyer_id"), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

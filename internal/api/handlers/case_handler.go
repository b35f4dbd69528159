package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/cases"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type CaseHandler struct {
	cases *cases.Service
}

func NewCaseHandler(svc *cases.Service) *CaseHandler {
	return &CaseHandler{cases: svc}
}

func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	// Archived cases stay hidden unless asked for
	activeOnly := r.URL.Query().Get("include_archived") != "true"

	list, err := h.cases.List(authContext(r), activeOnly)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.GetByID(param(r, "case_id"), authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cases.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	c, err := h.cases.Create(&req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cases.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	c, err := h.cases.Update(param(r, "case_id"), &req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CaseHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ColumnID string `json:"column_id"`
		Order    int    `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	c, err := h.cases.Move(param(r, "case_id"), req.ColumnID, req.Order, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CaseHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssignedTo *string `json:"assigned_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	c, err := h.cases.Assign(param(r, "case_id"), req.AssignedTo, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.cases.Delete(param(r, "case_id"), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/columns"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type ColumnHandler struct {
	columns *columns.Service
}

func NewColumnHandler(svc *columns.Service) *ColumnHandler {
	return &ColumnHandler{columns: svc}
}

// List returns the board: every column with its active cases.
func (h *ColumnHandler) List(w http.ResponseWriter, r *http.Request) {
	board, err := h.columns.ListWithCases(authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	column, err := h.columns.Create(req.Title, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, column)
}

func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req columns.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	column, err := h.columns.Update(param(r, "column_id"), &req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, column)
}

func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.columns.Delete(param(r, "column_id"), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

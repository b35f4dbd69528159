package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/organizations"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type OrgHandler struct {
	orgs *organizations.Service
}

func NewOrgHandler(orgs *organizations.Service) *OrgHandler {
	return &OrgHandler{orgs: orgs}
}

func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgs.Get(authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrgHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req organizations.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	org, err := h.orgs.Update(&req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

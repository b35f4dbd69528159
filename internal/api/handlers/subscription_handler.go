package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type SubscriptionHandler struct {
	billing *billing.Service
}

func NewSubscriptionHandler(svc *billing.Service) *SubscriptionHandler {
	return &SubscriptionHandler{billing: svc}
}

func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.billing.GetInfo(authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *SubscriptionHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	url, err := h.billing.CreateCheckout(r.Context(), req.Plan, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *SubscriptionHandler) CreatePortal(w http.ResponseWriter, r *http.Request) {
	url, err := h.billing.CreatePortal(r.Context(), authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Cancel schedules cancellation at the period end; access continues until
// then and Reactivate can undo it.
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.billing.Cancel(r.Context(), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Subscription will be canceled at the end of the billing period"})
}

func (h *SubscriptionHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.billing.Reactivate(r.Context(), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Subscription reactivated"})
}

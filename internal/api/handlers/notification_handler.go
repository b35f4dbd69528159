package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brunolandim/back-jurix/internal/engine/notifications"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
)

type NotificationHandler struct {
	notifications *notifications.Service
}

func NewNotificationHandler(svc *notifications.Service) *NotificationHandler {
	return &NotificationHandler{notifications: svc}
}

// List returns the caller's notifications, or a case's when caseId is given.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	authCtx := authContext(r)

	if caseID := r.URL.Query().Get("caseId"); caseID != "" {
		list, err := h.notifications.ListByCase(caseID, authCtx)
		if err != nil {
			errors.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.notifications.ListByLawyer(authCtx)
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req notifications.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	n, err := h.notifications.Create(&req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req notifications.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	n, err := h.notifications.Update(param(r, "notification_id"), &req, authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.MarkAsRead(param(r, "notification_id"), authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notifications.MarkAllAsRead(authContext(r))
	if err != nil {
		errors.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Delete(param(r, "notification_id"), authContext(r)); err != nil {
		errors.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

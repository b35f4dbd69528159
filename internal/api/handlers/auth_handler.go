package handlers

import (
	"encoding/json"
	"net/http"

	apiContext "github.com/brunolandim/back-jurix/internal/api/context"
	"github.com/brunolandim/back-jurix/internal/engine/lawyers"
	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
)

type AuthHandler struct {
	auth    *lawyers.AuthService
	lawyers *lawyers.Service
}

func NewAuthHandler(authSvc *lawyers.AuthService, lawyerSvc *lawyers.Service) *AuthHandler {
	return &AuthHandler{auth: authSvc, lawyers: lawyerSvc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		errors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		errors.Write(w, err)
		return
	}

	// Same response whether or not the email exists
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If the email exists, a reset code has been sent",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}

	if err := h.auth.ResetPassword(req.Email, req.Code, req.Password); err != nil {
		errors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(apiContext.Claims).(*auth.Claims)

	me, err := h.auth.GetMe(claims.LawyerID)
	if err != nil {
		errors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, me)
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(apiContext.Claims).(*auth.Claims)

	var req lawyers.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.Write(w, errors.Validation("Invalid request body"))
		return
	}
	// Role and activation changes go through the lawyer management routes
	req.Role = nil
	req.Active = nil

	updated, err := h.lawyers.Update(claims.LawyerID, &req, claims.Context())
	if err != nil {
		errors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

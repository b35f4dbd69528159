package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
	ErrCodeReadOnlyMode         = "READ_ONLY_MODE"
	ErrCodePlanLimitReached     = "PLAN_LIMIT_REACHED"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// Error is the domain error carried from engine services up to the HTTP
// layer, which translates Status/Code into the transport response.
type Error struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound covers both absent entities and entities outside the caller's
// organization, so tenants cannot probe for each other's data.
func NotFound(entity, id string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

func Conflict(message, field string) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Code:    ErrCodeConflict,
		Message: message,
		Details: map[string]string{"field": field},
	}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: ErrCodeForbidden, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: message}
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: ErrCodeInvalidInput, Message: message}
}

// SubscriptionRequired signals that no usable subscription exists for the
// organization (missing, canceled or unpaid).
func SubscriptionRequired() *Error {
	return &Error{
		Status:  http.StatusPaymentRequired,
		Code:    ErrCodeSubscriptionRequired,
		Message: "An active subscription is required",
	}
}

// ReadOnlyMode signals a past_due subscription: data stays visible but
// mutations are blocked until payment recovers.
func ReadOnlyMode() *Error {
	return &Error{
		Status:  http.StatusPaymentRequired,
		Code:    ErrCodeReadOnlyMode,
		Message: "Subscription is past due, account is in read-only mode",
	}
}

func PlanLimitReached(resource string, limit int) *Error {
	return &Error{
		Status:  http.StatusForbidden,
		Code:    ErrCodePlanLimitReached,
		Message: fmt.Sprintf("Plan limit reached for %s (%d)", resource, limit),
		Details: map[string]interface{}{"resource": resource, "limit": limit},
	}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message}
}

type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Write translates any error into the JSON error envelope. Unrecognized
// errors become opaque 500s so internals never leak to clients.
func Write(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error")
	}
	WriteError(w, appErr.Status, appErr.Code, appErr.Message, appErr.Details)
}

func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
		Details: details,
	})
}

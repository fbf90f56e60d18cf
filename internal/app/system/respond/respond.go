// Package respond writes the JSON envelopes used by every API endpoint.
//
// Success:  { "success": true,  "message": "...", "data": {...} }
// Failure:  { "success": false, "error": { "message", "code", "details" } }
//
// Error codes are stable machine-readable strings; details carries
// per-field entries for validation failures only.
package respond

import (
	"encoding/json"
	"net/http"
)

// Stable error codes surfaced to clients.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeServerError        = "SERVER_ERROR"
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"

	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeEmailExists    = "EMAIL_EXISTS"
	CodeUsernameExists = "USERNAME_EXISTS"

	CodeGroupNotFound      = "GROUP_NOT_FOUND"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeGroupFull          = "GROUP_FULL"
	CodeCreatorCannotLeave = "CREATOR_CANNOT_LEAVE"
	CodeNotAMember         = "NOT_A_MEMBER"
	CodeAccessDenied       = "ACCESS_DENIED"

	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodePermissionDenied = "PERMISSION_DENIED"

	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodeNotAParticipant      = "NOT_A_PARTICIPANT"
	CodeSessionFull          = "SESSION_FULL"
	CodeAlreadyJoined        = "ALREADY_JOINED"
	CodeCannotJoinOwnSession = "CANNOT_JOIN_OWN_SESSION"
	CodeInvalidTimeRange     = "INVALID_TIME_RANGE"
	CodeNotAuthorized        = "NOT_AUTHORIZED"
)

// FieldError is one per-field validation detail entry.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Message string       `json:"message"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 success envelope with an optional message and data payload.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope with the given status, message and code.
func Error(w http.ResponseWriter, status int, message, code string) {
	write(w, status, envelope{Success: false, Error: &errorBody{Message: message, Code: code}})
}

// ValidationFailed writes a 400 VALIDATION_ERROR envelope carrying one
// detail entry per offending field.
func ValidationFailed(w http.ResponseWriter, details []FieldError) {
	write(w, http.StatusBadRequest, envelope{
		Success: false,
		Error: &errorBody{
			Message: "Validation failed",
			Code:    CodeValidationError,
			Details: details,
		},
	})
}

// ServerError writes a generic 500 envelope. The underlying error is logged
// by the caller, never sent to the client.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error", CodeServerError)
}

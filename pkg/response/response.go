// Package response writes the API's JSON wire shapes. Success bodies are the
// bare entity or a small message object; failures are {"error": "..."} with
// a generic, non-leaking message.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK writes a 200 with v.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created writes a 201 with v.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Message writes a 200 {"message": ...}.
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, map[string]string{"message": message})
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// BadRequest writes a 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Not authenticated")
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Not authorized")
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Internal writes a 500. message should be a generic "Failed to X"; the real
// error belongs in the server log, never in the body.
func Internal(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

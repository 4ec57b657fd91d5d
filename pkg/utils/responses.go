package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func ResponseJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// headers are already sent, an encode failure can only drop the body
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, code int, message string, data any) {
	ResponseJSON(w, code, Response{Status: true, Message: message, Data: data})
}

func respondFail(w http.ResponseWriter, code int, message string, errs any) {
	ResponseJSON(w, code, Response{Status: false, Message: message, Errors: errs})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	respondOK(w, http.StatusOK, message, data)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	respondOK(w, http.StatusCreated, message, data)
}

// ResponseNoContent answers deletes; no envelope, no body.
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ResponseBadRequest carries per-field messages in errors, keyed by JSON field
// name or tickets[i] for reservation items.
func ResponseBadRequest(w http.ResponseWriter, message string, errs any) {
	respondFail(w, http.StatusBadRequest, message, errs)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	respondFail(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	respondFail(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	respondFail(w, http.StatusNotFound, message, nil)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	respondFail(w, http.StatusTooManyRequests, message, nil)
}

// ResponseInternalError never echoes the cause; log it before calling.
func ResponseInternalError(w http.ResponseWriter, message string) {
	respondFail(w, http.StatusInternalServerError, message, nil)
}

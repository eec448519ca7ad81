// Package httputil centralizes JSON encoding and domain-error translation for
// HTTP handlers so every endpoint speaks the same error envelope.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "recscope/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the shared JSON error envelope.
// Internal errors omit the description so infrastructure detail never leaks
// to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body["error_description"] = de.Message
		}
	}
	WriteJSON(w, StatusFor(code), body)
}

// Decode reads the request body into T and reports malformed JSON as a
// bad-request domain error written to w. The bool result tells the handler
// whether to continue.
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		WriteError(w, dErrors.Wrap(dErrors.CodeBadRequest, "malformed request body", err))
		return v, false
	}
	return v, true
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeInvalidScopeInput:
		return http.StatusBadRequest
	case dErrors.CodeIntakeNotReady:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeCatalogMismatch:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Package httputil writes the JSON envelopes shared by every handler.
// Success bodies are caller-shaped; error bodies always carry an "error"
// code and, for client-caused failures, an "error_description".
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "tempus/pkg/domain-errors"
)

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON serializes v with the given status. Encoding failures are
// swallowed: headers are already on the wire by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps err's code to an HTTP status and writes the error
// envelope. Internal errors omit the description so operational detail
// (SQL text, hostnames) never reaches clients; everything else echoes the
// domain message for the caller to act on.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	resp := ErrorResponse{Error: string(code)}
	if status < http.StatusInternalServerError {
		var de *dErrors.Error
		if errors.As(err, &de) {
			resp.ErrorDescription = de.Message()
		} else {
			resp.ErrorDescription = err.Error()
		}
	}

	WriteJSON(w, status, resp)
}

// DecodeJSON reads a request body into dst, rejecting unknown fields and
// trailing garbage. Returns a coded bad_request error suitable for
// WriteError.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed request body")
	}
	if dec.More() {
		return dErrors.New(dErrors.CodeBadRequest, "request body must contain a single JSON object")
	}
	return nil
}

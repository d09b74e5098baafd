// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/enrollment-intake/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Error responses always look like:
//
//	{ "status": "error", "error": "field phone is invalid" }
//
// Validation failures also carry the failing fields so a form can
// highlight every one of them at once:
//
//	{ "status": "error", "error": "...", "fields": [{"field": "phone", "rule": "phone"}] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string                  `json:"status"`           // "ok" or "error"
	Error  string                  `json:"error"`            // human-readable error detail
	Kind   string                  `json:"kind,omitempty"`   // system error kind, when known
	Fields []validation.FieldError `json:"fields,omitempty"` // failing fields, for validation errors
}

// Status string constants - use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (DB failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// SystemError reports a failure that is not the applicant's fault.
func SystemError(kind, message string) Response {
	return Response{
		Status: StatusError,
		Error:  message,
		Kind:   kind,
	}
}

// ValidationError converts field errors into a single human-readable
// Response, keeping the structured list alongside.
//
// Example output:
//
//	{ "status": "error", "error": "field childName is required, field email must be a valid email address", ... }
func ValidationError(errs []validation.FieldError) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.Rule {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field))
		case "basicemail":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field))
		case "nationalid":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is not a valid national ID", e.Field))
		case "birthdate":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must place the child between 0 and 6 years old", e.Field))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s has an unknown option", e.Field))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
		Fields: errs,
	}
}

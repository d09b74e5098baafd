// Package enrollment contains the HTTP handlers for enrollment intake.
//
// Handlers follow the closure / factory pattern: a factory receives its
// dependencies once at startup and returns the http.HandlerFunc the router
// calls on every request.
//
//	router.HandleFunc("POST /api/enrollments", enrollment.New(pipeline))
package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/enrollment-intake/internal/storage"
	"github.com/aanand-mishra/enrollment-intake/internal/submission"
	"github.com/aanand-mishra/enrollment-intake/internal/types"
	"github.com/aanand-mishra/enrollment-intake/internal/utils/response"
	"github.com/aanand-mishra/enrollment-intake/internal/validation"
)

// maxBodyBytes caps request bodies; an enrollment is a few kilobytes.
const maxBodyBytes = 64 << 10

// Submitter runs one submission; *submission.Pipeline implements it.
type Submitter interface {
	Submit(ctx context.Context, rec types.EnrollmentRecord) submission.Outcome
}

// submitResponse is the success body for POST /api/enrollments.
type submitResponse struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	LocalID string `json:"localId,omitempty"`
	Message string `json:"message"`
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/enrollments
// Validates and stores one enrollment application.
//
// Responses:
//
//	201 Created              - stored by the remote service  { "id": "..." }
//	202 Accepted             - saved to the local queue      { "localId": "local_..." }
//	400 Bad Request          - empty body, malformed JSON, or failed validation
//	403 Forbidden            - remote permission denied and local queue failed
//	422 Unprocessable Entity - remote rejected the data and local queue failed
//	503 Service Unavailable  - remote unreachable and local queue failed
//	500 Internal             - anything else
//
// ─────────────────────────────────────────────────────────────────────────────
func New(submitter Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("submitting an enrollment")

		var rec types.EnrollmentRecord
		if !decode(w, r, &rec) {
			return
		}

		outcome := submitter.Submit(r.Context(), rec)

		switch o := outcome.(type) {
		case submission.AcceptedRemote:
			response.WriteJSON(w, http.StatusCreated, submitResponse{
				Status: response.StatusOK, ID: o.ID, Message: o.Message(),
			})
		case submission.AcceptedLocalFallback:
			response.WriteJSON(w, http.StatusAccepted, submitResponse{
				Status: response.StatusOK, LocalID: o.LocalID, Message: o.Message(),
			})
		case submission.RejectedValidation:
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(o.Fields))
		case submission.RejectedSystem:
			response.WriteJSON(w, statusForKind(o.Kind), response.SystemError(string(o.Kind), o.Message()))
		default:
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(errors.New("unexpected submission outcome")))
		}
	}
}

func statusForKind(kind submission.ErrorKind) int {
	switch kind {
	case submission.KindPermissionDenied:
		return http.StatusForbidden
	case submission.KindUnavailable:
		return http.StatusServiceUnavailable
	case submission.KindInvalidArgument:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// draftRequest carries the current form state plus the field being edited.
type draftRequest struct {
	Record types.EnrollmentRecord `json:"record"`
	Field  string                 `json:"field"`
	Value  string                 `json:"value"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Draft handles POST /api/enrollments/draft
// Applies one keystroke-level edit and returns the updated record with
// national IDs, phone, and postal code formatted as typed. Nothing is stored.
//
// Request body (JSON):
//
//	{ "record": { ... }, "field": "phone", "value": "11987654321" }
//
// Success response (200 OK): the updated record.
// ─────────────────────────────────────────────────────────────────────────────
func Draft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req draftRequest
		if !decode(w, r, &req) {
			return
		}

		updated, ok := validation.Apply(req.Record, req.Field, req.Value)
		if !ok {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("unknown field: "+req.Field)))
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPendingList handles GET /api/enrollments/pending
// Returns every enrollment waiting in the local queue, oldest first.
// Returns an empty array [] (not null) when nothing is queued.
// ─────────────────────────────────────────────────────────────────────────────
func GetPendingList(queue storage.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing pending enrollments")

		entries, err := queue.ListPending(r.Context())
		if err != nil {
			slog.Error("error listing pending enrollments", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, entries)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPendingByID handles GET /api/enrollments/pending/{id}
// Fetches one locally queued enrollment by its local ID.
//
//	404 Not Found - no queued entry with that ID
//
// ─────────────────────────────────────────────────────────────────────────────
func GetPendingByID(queue storage.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a pending enrollment", slog.String("id", id))

		entry, err := queue.GetPending(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error getting pending enrollment",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, entry)
	}
}

// decode reads a JSON body into v, writing a 400 and returning false on
// failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		// io.EOF means the body was completely empty - nothing to decode.
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}

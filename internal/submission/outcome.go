package submission

import (
	"context"
	"errors"
	"strings"

	"github.com/aanand-mishra/enrollment-intake/internal/remote"
	"github.com/aanand-mishra/enrollment-intake/internal/validation"
)

// Outcome is the result of one Submit call. It is always exactly one of
// AcceptedRemote, AcceptedLocalFallback, RejectedValidation, or
// RejectedSystem; callers switch on the concrete type.
type Outcome interface {
	// Accepted reports whether the record was durably stored somewhere.
	Accepted() bool
	// Message is the text to show the person who submitted the form.
	Message() string

	isOutcome()
}

// AcceptedRemote means the remote service stored the record.
type AcceptedRemote struct {
	ID string
}

// AcceptedLocalFallback means the remote write failed and the record was
// queued locally for a later sync.
type AcceptedLocalFallback struct {
	LocalID string
}

// RejectedValidation means the record failed local validation; nothing
// was sent anywhere.
type RejectedValidation struct {
	Fields []validation.FieldError
}

// RejectedSystem means both the remote write and the local fallback
// failed. Kind and Detail describe the remote failure, not the local one.
type RejectedSystem struct {
	Kind   ErrorKind
	Detail string
}

func (AcceptedRemote) isOutcome()        {}
func (AcceptedLocalFallback) isOutcome() {}
func (RejectedValidation) isOutcome()    {}
func (RejectedSystem) isOutcome()        {}

func (AcceptedRemote) Accepted() bool        { return true }
func (AcceptedLocalFallback) Accepted() bool { return true }
func (RejectedValidation) Accepted() bool    { return false }
func (RejectedSystem) Accepted() bool        { return false }

func (AcceptedRemote) Message() string {
	return "Enrollment registered and under review. You will hear back soon."
}

func (AcceptedLocalFallback) Message() string {
	return "Enrollment saved locally. It will be sent to the server once the connection is restored."
}

func (o RejectedValidation) Message() string {
	names := make([]string, 0, len(o.Fields))
	for _, f := range o.Fields {
		names = append(names, f.Field)
	}
	return "Some fields are invalid: " + strings.Join(names, ", ")
}

func (o RejectedSystem) Message() string {
	switch o.Kind {
	case KindPermissionDenied:
		return "Permission error. Check the intake service configuration."
	case KindUnavailable:
		return "Service temporarily unavailable. Try again in a few minutes."
	case KindInvalidArgument:
		return "Invalid data. Check that every field is filled in correctly."
	default:
		msg := o.Detail
		if msg == "" {
			msg = "unknown error"
		}
		return "Could not register the enrollment: " + msg
	}
}

// ErrorKind classifies a system failure for the caller.
type ErrorKind string

const (
	// KindPermissionDenied is an authorization or configuration problem,
	// meant for an operator rather than the applicant.
	KindPermissionDenied ErrorKind = "permission_denied"

	// KindUnavailable is transient; the applicant should retry later.
	KindUnavailable ErrorKind = "unavailable"

	// KindInvalidArgument means the service rejected data that passed local
	// validation, i.e. local rules and the remote schema disagree.
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindUnknown is everything else; Detail keeps the original error text.
	KindUnknown ErrorKind = "unknown"
)

// Classify maps a remote write error onto an ErrorKind and a diagnostic
// message. Timeouts are Unavailable.
func Classify(err error) (ErrorKind, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindUnavailable, err.Error()
	}
	switch remote.KindOf(err) {
	case remote.KindPermissionDenied:
		return KindPermissionDenied, err.Error()
	case remote.KindUnavailable:
		return KindUnavailable, err.Error()
	case remote.KindInvalidArgument:
		return KindInvalidArgument, err.Error()
	default:
		return KindUnknown, err.Error()
	}
}

// Package remote implements the remote-write collaborators that persist
// enrollments on the central service, and the error taxonomy they report.
package remote

import (
	"errors"
	"fmt"
)

// Kind is the normalized failure category of a remote write.
type Kind string

const (
	// KindPermissionDenied means the credentials or access rules rejected the write.
	KindPermissionDenied Kind = "permission-denied"

	// KindUnavailable means the service could not be reached or timed out.
	KindUnavailable Kind = "unavailable"

	// KindInvalidArgument means the service rejected the shape of the data.
	KindInvalidArgument Kind = "invalid-argument"

	// KindOther covers everything else.
	KindOther Kind = "other"
)

// Error wraps a remote write failure with its category.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("remote write [%s]: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("remote write [%s]: %s", e.Kind, e.Message)
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized remote error.
func NewError(kind Kind, message string, underlying error) *Error {
	return &Error{Kind: kind, Message: message, Underlying: underlying}
}

// KindOf extracts the category from err, defaulting to KindOther.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindOther
}

// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles -
// validation, storage, remote writers, and handlers can all import types
// without depending on each other.
package types

import "time"

// StatusPendingReview is the fixed initial status assigned to every
// accepted enrollment, whether it reached the remote service or the
// local queue.
const StatusPendingReview = "pending_review"

// SyncStatusPending marks a locally queued enrollment that has not yet
// been pushed to the remote service.
const SyncStatusPending = "pending_sync"

// DateLayout is the calendar-date format used for birth and submission dates.
const DateLayout = "2006-01-02"

// Relationship values accepted for the guardian.
const (
	RelationshipParent      = "parent"
	RelationshipGrandparent = "grandparent"
	RelationshipUncleAunt   = "uncle-aunt"
	RelationshipSibling     = "sibling"
	RelationshipOther       = "other"
)

// EnrollmentRecord is one daycare enrollment application.
//
// It is a plain value: handlers decode it, validation.Apply returns
// updated copies of it, and once accepted by either persistence path it is
// never edited in place.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  - the wire name, also used in field error reports.
//  2. validate:"..." - rules checked by the go-playground/validator
//     package plus the custom tags registered by validation.Engine
//     (nationalid, birthdate, phone, postalcode, basicemail).
type EnrollmentRecord struct {
	// Child
	ChildName       string `json:"childName"       validate:"required"`
	BirthDate       string `json:"birthDate"       validate:"required,birthdate"`
	ChildNationalID string `json:"childNationalId" validate:"required,nationalid"`
	DomesticID      string `json:"domesticId"      validate:"required"`

	// Guardian
	GuardianName       string `json:"guardianName"       validate:"required"`
	Relationship       string `json:"relationship"       validate:"required,oneof=parent grandparent uncle-aunt sibling other"`
	GuardianNationalID string `json:"guardianNationalId" validate:"required,nationalid"`
	Phone              string `json:"phone"              validate:"required,phone"`
	Email              string `json:"email,omitempty"    validate:"omitempty,basicemail"`

	// Address
	Street     string `json:"street"               validate:"required"`
	Number     string `json:"number"               validate:"required"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"             validate:"required"`
	City       string `json:"city"                 validate:"required"`
	PostalCode string `json:"postalCode"           validate:"required,postalcode"`

	// Socioeconomic
	Race           string `json:"race"                     validate:"required,oneof=white black brown yellow indigenous undisclosed"`
	IncomeBracket  string `json:"incomeBracket"            validate:"required,oneof=up-to-1 1-to-2 2-to-3 3-to-5 above-5 undisclosed"`
	HouseholdSize  string `json:"householdSize"            validate:"required,oneof=1 2 3 4 5 6-or-more"`
	Housing        string `json:"housing"                  validate:"required,oneof=owned rented lent financed other"`
	HasDisability  string `json:"hasDisability"            validate:"required,oneof=yes no"`
	DisabilityType string `json:"disabilityType,omitempty"`

	Notes          string `json:"notes,omitempty"`
	SubmissionDate string `json:"submissionDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Metadata travels with a record to either persistence path.
// CapturedAt is the client clock; the remote service stamps its own time.
type Metadata struct {
	Status     string    `json:"status"`
	CapturedAt time.Time `json:"capturedAt"`
}

// PendingEnrollment is a record that could not reach the remote service
// and was written to the local durable queue instead. It stays there
// until a sync process drains it.
type PendingEnrollment struct {
	LocalID    string           `json:"localId"`
	Record     EnrollmentRecord `json:"record"`
	CapturedAt time.Time        `json:"capturedAt"`
	Status     string           `json:"status"`
	SyncStatus string           `json:"syncStatus"`
}

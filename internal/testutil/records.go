// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"time"

	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// Today is the fixed "current date" that ValidRecord is built against.
var Today = time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

// Clock returns Today; pass it wherever a func() time.Time is expected.
func Clock() time.Time {
	return Today
}

// ValidRecord returns an enrollment that passes every rule as of Today.
func ValidRecord() types.EnrollmentRecord {
	return types.EnrollmentRecord{
		ChildName:       "Ana Clara Souza",
		BirthDate:       "2023-05-10",
		ChildNationalID: "529.982.247-25",
		DomesticID:      "12.345.678-9",

		GuardianName:       "Maria Souza",
		Relationship:       types.RelationshipParent,
		GuardianNationalID: "111.444.777-35",
		Phone:              "(11) 98765-4321",
		Email:              "maria.souza@example.com",

		Street:     "Rua das Flores",
		Number:     "120",
		Complement: "apto 3",
		District:   "Centro",
		City:       "São Paulo",
		PostalCode: "01310-100",

		Race:          "brown",
		IncomeBracket: "1-to-2",
		HouseholdSize: "4",
		Housing:       "rented",
		HasDisability: "no",

		Notes:          "Allergic to peanuts",
		SubmissionDate: "2026-10-18",
	}
}

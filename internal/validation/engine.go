// Package validation formats and checks enrollment input.
//
// Everything here is pure: no network, no storage. Formatters are total
// and meant to run on every keystroke; validators fail closed on empty
// input. Engine ties the field rules together into one exhaustive check
// of an EnrollmentRecord.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// FieldError names one failing field and the rule it broke.
// Field is the JSON name of the field (e.g. "guardianNationalId").
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Engine validates whole enrollment records. It is safe for concurrent use.
type Engine struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for the age check.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine builds an Engine with the enrollment rules registered.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Report JSON names so clients can map errors back to form inputs.
	e.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// RegisterValidation only fails on an empty tag or nil func.
	_ = e.validate.RegisterValidation("nationalid", func(fl validator.FieldLevel) bool {
		return ValidateNationalID(fl.Field().String())
	})
	_ = e.validate.RegisterValidation("basicemail", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	_ = e.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		n := len(digitsOnly(fl.Field().String()))
		return n == 10 || n == phoneMaxLength
	})
	_ = e.validate.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return len(digitsOnly(fl.Field().String())) == postalCodeLength
	})
	_ = e.validate.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		birth, err := ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return ValidateBirthDateAt(birth, e.now())
	})

	return e
}

// Check runs every rule against Normalize(rec) and returns all failing
// fields, in declaration order. A nil result means the record is valid.
// Callers that persist a checked record should persist Normalize(rec).
func (e *Engine) Check(rec types.EnrollmentRecord) []FieldError {
	err := e.validate.Struct(Normalize(rec))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable when Struct is handed a non-struct.
		return []FieldError{{Field: "record", Rule: "invalid"}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return fields
}

// Now returns the engine's notion of the current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Normalize returns rec with surrounding whitespace removed from every
// string field, so a blank required field fails and enum values match.
func Normalize(rec types.EnrollmentRecord) types.EnrollmentRecord {
	v := reflect.ValueOf(&rec).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
	return rec
}

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// maxEnrollmentAge is the oldest age, in whole years, accepted by the daycare.
const maxEnrollmentAge = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateNationalID reports whether text is an 11-digit national ID whose
// two check digits match the weighted modulo-11 checksum. Formatting
// characters are ignored.
func ValidateNationalID(text string) bool {
	d := digitsOnly(text)
	if len(d) != nationalIDLength {
		return false
	}
	if strings.Count(d, d[:1]) == nationalIDLength {
		return false
	}

	digits := make([]int, nationalIDLength)
	for i := range d {
		digits[i] = int(d[i] - '0')
	}

	return checkDigit(digits[:9]) == digits[9] &&
		checkDigit(digits[:10]) == digits[10]
}

// weightedRemainder sums digits with weights descending to 2 and returns
// the sum modulo 11.
func weightedRemainder(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, n := range digits {
		sum += n * weight
		weight--
	}
	return sum % 11
}

func checkDigit(digits []int) int {
	r := weightedRemainder(digits)
	if r < 2 {
		return 0
	}
	return 11 - r
}

// ValidateEmail reports whether text looks like local@domain.tld.
// An empty string is not a valid address; callers treating email as
// optional must skip the check themselves.
func ValidateEmail(text string) bool {
	return strings.Count(text, "@") == 1 && emailPattern.MatchString(text)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(text string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("validation.ParseDate: %w", err)
	}
	return t, nil
}

// ValidateBirthDate reports whether a child born on birth is between 0 and
// 6 years old today.
func ValidateBirthDate(birth time.Time) bool {
	return ValidateBirthDateAt(birth, time.Now())
}

// ValidateBirthDateAt is ValidateBirthDate evaluated on the given day.
// Only calendar dates are compared. A child is eligible from the day of
// birth through the sixth birthday itself.
func ValidateBirthDateAt(birth, today time.Time) bool {
	if birth.IsZero() {
		return false
	}
	b := calendarDate(birth)
	t := calendarDate(today)
	if b.After(t) {
		return false
	}

	age := ageInYears(b, t)
	switch {
	case age < maxEnrollmentAge:
		return true
	case age == maxEnrollmentAge:
		return b.Month() == t.Month() && b.Day() == t.Day()
	default:
		return false
	}
}

// ageInYears counts completed years, accounting for whether the birthday
// has already happened this year.
func ageInYears(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

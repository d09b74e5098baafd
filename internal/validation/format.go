package validation

import "strings"

const (
	nationalIDLength = 11
	phoneMaxLength   = 11
	postalCodeLength = 8
)

// digitsOnly drops every rune that is not an ASCII digit.
func digitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// FormatNationalID renders an 11-digit national ID as NNN.NNN.NNN-NN.
// Shorter input is returned as its digits only, so the function can run on
// every keystroke. Digits beyond the eleventh are dropped.
func FormatNationalID(raw string) string {
	d := truncate(digitsOnly(raw), nationalIDLength)
	if len(d) < nationalIDLength {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatPhone renders (AA) NNNNN-NNNN for mobile numbers and
// (AA) NNNN-NNNN for landlines, formatting partial input as far as it goes.
func FormatPhone(raw string) string {
	d := truncate(digitsOnly(raw), phoneMaxLength)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// FormatPostalCode renders NNNNN-NNN, formatting partial input as far as it goes.
func FormatPostalCode(raw string) string {
	d := truncate(digitsOnly(raw), postalCodeLength)
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

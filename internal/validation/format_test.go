package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNationalID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"partial digits pass through", "5299", "5299"},
		{"partial with separators keeps digits", "529.98", "52998"},
		{"full number", "52998224725", "529.982.247-25"},
		{"already formatted", "529.982.247-25", "529.982.247-25"},
		{"noise stripped", " 529a982b247c25 ", "529.982.247-25"},
		{"extra digits dropped", "5299822472599", "529.982.247-25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNationalID(tt.raw))
		})
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"area code only", "11", "(11"},
		{"partial number", "11987", "(11) 987"},
		{"landline", "1133334444", "(11) 3333-4444"},
		{"mobile", "11987654321", "(11) 98765-4321"},
		{"formatted mobile", "(11) 98765-4321", "(11) 98765-4321"},
		{"seven digits", "1198765", "(11) 9876-5"},
		{"extra digits dropped", "119876543210", "(11) 98765-4321"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.raw))
		})
	}
}

func TestFormatPostalCode(t *testing.T) {
	assert.Equal(t, "", FormatPostalCode(""))
	assert.Equal(t, "01310", FormatPostalCode("01310"))
	assert.Equal(t, "01310-1", FormatPostalCode("013101"))
	assert.Equal(t, "01310-100", FormatPostalCode("01310100"))
	assert.Equal(t, "01310-100", FormatPostalCode("01310-100"))
	assert.Equal(t, "01310-100", FormatPostalCode("0131010099"))
}

// Formatting the formatted value must not change it, whatever the input.
func TestFormatters_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "abc", "1", "12", "123", "1234", "12345", "123456",
		"1234567", "12345678", "123456789", "1234567890", "12345678901",
		"123456789012", "529.982.247-25", "(11) 98765-4321", "01310-100",
		"--..--", "１２３", "5 2 9 9 8 2 2 4 7 2 5",
	}
	formatters := map[string]func(string) string{
		"national id": FormatNationalID,
		"phone":       FormatPhone,
		"postal code": FormatPostalCode,
	}
	for name, format := range formatters {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				once := format(in)
				assert.Equal(t, once, format(once), "input %q", in)
			}
		})
	}
}

package validation

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNationalID appends both check digits to a 9-digit body.
func buildNationalID(body []int) string {
	digits := append([]int{}, body...)
	digits = append(digits, checkDigit(digits))
	digits = append(digits, checkDigit(digits))
	var b strings.Builder
	for _, d := range digits {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

func TestValidateNationalID(t *testing.T) {
	t.Run("accepts known valid numbers", func(t *testing.T) {
		for _, id := range []string{"52998224725", "529.982.247-25", "111.444.777-35", "12345678909", "98765432100"} {
			assert.True(t, ValidateNationalID(id), id)
		}
	})

	t.Run("rejects wrong check digits", func(t *testing.T) {
		assert.False(t, ValidateNationalID("529.982.247-26"))
		assert.False(t, ValidateNationalID("529.982.247-15"))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		for _, id := range []string{"", "   ", "5299822472", "529982247250", "abc"} {
			assert.False(t, ValidateNationalID(id), id)
		}
	})

	t.Run("rejects repeated digits", func(t *testing.T) {
		for d := 0; d <= 9; d++ {
			id := strings.Repeat(strconv.Itoa(d), 11)
			assert.False(t, ValidateNationalID(id), id)
		}
	})
}

func TestValidateNationalID_GeneratedNumbers(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	collisions := 0

	for n := 0; n < 2000; n++ {
		body := make([]int, 9)
		for i := range body {
			body[i] = 1 + rng.Intn(9)
		}
		id := buildNationalID(body)
		if strings.Count(id, id[:1]) == len(id) {
			continue
		}
		require.True(t, ValidateNationalID(id), id)

		for pos := 0; pos < len(id); pos++ {
			for repl := byte('0'); repl <= '9'; repl++ {
				if repl == id[pos] {
					continue
				}
				flipped := id[:pos] + string(repl) + id[pos+1:]
				if !ValidateNationalID(flipped) {
					continue
				}

				// Check digits are compared directly, so they never collide.
				require.Less(t, pos, 9, "flipping check digit accepted: %s -> %s", id, flipped)

				// Body collisions only happen when remainders 0 and 1 both
				// collapse to check digit 0.
				orig, flip := toDigits(id), toDigits(flipped)
				assertCollapsed(t, weightedRemainder(orig[:9]), weightedRemainder(flip[:9]))
				assertCollapsed(t, weightedRemainder(orig[:10]), weightedRemainder(flip[:10]))
				collisions++
			}
		}
	}
	t.Logf("single-digit collisions found: %d", collisions)
}

func toDigits(s string) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = int(s[i] - '0')
	}
	return out
}

func assertCollapsed(t *testing.T, a, b int) {
	t.Helper()
	if a == b {
		return
	}
	assert.True(t, a < 2 && b < 2, "remainders %d and %d should map to the same check digit", a, b)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.c", "maria.silva@example.com.br", "x+tag@sub.domain.org"}
	invalid := []string{"", " ", "a@b", "@b.c", "a@.", "a@b.", "a@@b.c", "a@b@c.d", "a b@c.d", "ab.c"}

	for _, e := range valid {
		assert.True(t, ValidateEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, ValidateEmail(e), e)
	}
}

func TestValidateBirthDateAt(t *testing.T) {
	today := time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  bool
	}{
		{"born today", time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), true},
		{"newborn", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), true},
		{"three years old", time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC), true},
		{"turns six tomorrow", time.Date(2020, time.October, 19, 0, 0, 0, 0, time.UTC), true},
		{"exactly six years", today.AddDate(-6, 0, 0), true},
		{"six years and one day", today.AddDate(-6, 0, -1), false},
		{"seven years old", time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", today.AddDate(0, 0, 1), false},
		{"next year", today.AddDate(1, 0, 0), false},
		{"zero time", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateBirthDateAt(tt.birth, today))
		})
	}
}

func TestValidateBirthDate_UsesCurrentDate(t *testing.T) {
	now := time.Now()
	assert.True(t, ValidateBirthDate(now.AddDate(-2, 0, 0)))
	assert.True(t, ValidateBirthDate(now.AddDate(-6, 0, 0)))
	assert.False(t, ValidateBirthDate(now.AddDate(-6, 0, -1)))
	assert.False(t, ValidateBirthDate(now.AddDate(0, 0, 1)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2023-05-10 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/05/2023")
	assert.Error(t, err)
}

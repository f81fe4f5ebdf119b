// Package naira converts between user-facing naira price strings and the
// integer amounts the backend expects in query parameters.
package naira

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNoDigits = errors.New("naira: no digits in input")

// Parse strips every non-digit rune ("₦1,000,000" -> 1000000) and parses the
// remainder as a decimal integer.
func Parse(s string) (int64, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, ErrNoDigits
	}
	return strconv.ParseInt(b.String(), 10, 64)
}

// Format renders a non-negative amount with the naira sign and thousand
// separators: 1000000 -> "₦1,000,000".
func Format(n int64) string {
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	b.WriteString("₦")
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

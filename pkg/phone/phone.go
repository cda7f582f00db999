// Package phone normalizes Ukrainian phone numbers for storage and formats
// them for display. The canonical stored form is +380XXXXXXXXX.
package phone

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const region = "UA"

// Normalize converts raw user input into the canonical +380XXXXXXXXX form.
// Inputs that cannot be recognized are returned unchanged; normalization
// never fails a save.
func Normalize(raw string) string {
	digits := digitsOnly(raw)

	switch {
	case strings.HasPrefix(digits, "380") && len(digits) == 12:
		return "+" + digits
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "+38" + digits
	case len(digits) == 9:
		return "+380" + digits
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// FormatDisplay renders a canonical number as +38 (0XX)-XXX-XX-XX.
// Non-canonical values pass through unchanged.
func FormatDisplay(stored string) string {
	digits := digitsOnly(stored)
	if len(digits) != 12 || !strings.HasPrefix(digits, "380") {
		return stored
	}
	return fmt.Sprintf("+38 (0%s)-%s-%s-%s",
		digits[3:5], digits[5:8], digits[8:10], digits[10:12])
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

package utils

import "strings"

// NormalizePhone converts a phone number to E.164 form for SMS dispatch.
// Ten-digit numbers are assumed North American and prefixed with +1;
// eleven-digit numbers already starting with the country code get a plus;
// numbers entered with a leading + are stripped down to digits and the plus.
func NormalizePhone(phone string) string {
	digits := keepDigits(phone)

	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return "+" + digits
	}

	if len(digits) == 10 {
		return "+1" + digits
	}

	// Already international, or an unrecognized format: digits with a
	// leading plus.
	return "+" + digits
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

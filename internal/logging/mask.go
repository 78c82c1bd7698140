package logging

import (
	"regexp"
	"strings"
)

var emailMask = regexp.MustCompile(`^([^@]{1,3})[^@]*(@.+)$`)

// MaskEmail keeps up to three leading characters and the domain:
// ada.lovelace@x.com -> ada***@x.com.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	if m := emailMask.FindStringSubmatch(email); len(m) == 3 {
		return m[1] + "***" + m[2]
	}
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return "***" + email[i:]
	}
	return "***"
}

// MaskPhone keeps the last four digits.
func MaskPhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return "***"
	}
	return "***" + string(digits[len(digits)-4:])
}

// MaskContact masks an email or a phone number depending on its shape.
func MaskContact(contact string) string {
	if strings.Contains(contact, "@") {
		return MaskEmail(contact)
	}
	return MaskPhone(contact)
}

package services

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/dmitrijs2005/crownstore/internal/common"
)

const passwordMinLength = 8

// PasswordCheck describes a candidate password for a strength meter.
type PasswordCheck struct {
	Valid     bool
	MinLength bool
	HasLetter bool
	HasNumber bool

	// Strength is 0-100. Label buckets it into Weak, Medium and Strong.
	Strength int
	Label    string

	// Score is the zxcvbn estimate, 0-4.
	Score int
}

type passwordTraits struct {
	length                      int
	lower, upper, digit, symbol bool
}

func traitsOf(pw string) passwordTraits {
	var t passwordTraits
	for _, r := range pw {
		t.length++
		switch {
		case r >= 'a' && r <= 'z':
			t.lower = true
		case r >= 'A' && r <= 'Z':
			t.upper = true
		case r >= '0' && r <= '9':
			t.digit = true
		default:
			t.symbol = true
		}
	}
	return t
}

func (t passwordTraits) valid() bool {
	return t.length >= passwordMinLength && (t.lower || t.upper) && t.digit
}

// CheckPassword scores pw without rejecting it. userInputs (name, email)
// make zxcvbn penalise passwords built from them.
func CheckPassword(pw string, userInputs ...string) PasswordCheck {
	t := traitsOf(pw)
	c := PasswordCheck{
		Valid:     t.valid(),
		MinLength: t.length >= passwordMinLength,
		HasLetter: t.lower || t.upper,
		HasNumber: t.digit,
	}

	if t.length >= 8 {
		c.Strength += 25
	}
	if t.length >= 12 {
		c.Strength += 25
	}
	if t.lower && t.upper {
		c.Strength += 25
	}
	if t.digit {
		c.Strength += 15
	}
	if t.symbol {
		c.Strength += 10
	}
	c.Strength = min(c.Strength, 100)

	switch {
	case c.Strength < 40:
		c.Label = "Weak"
	case c.Strength < 70:
		c.Label = "Medium"
	default:
		c.Label = "Strong"
	}

	if pw != "" {
		c.Score = zxcvbn.PasswordStrength(pw, userInputs).Score
	}
	return c
}

// ValidatePassword enforces the account policy: at least 8 characters with
// a letter and a digit.
func ValidatePassword(pw []byte) error {
	if !traitsOf(string(pw)).valid() {
		return common.ErrWeakPassword
	}
	return nil
}

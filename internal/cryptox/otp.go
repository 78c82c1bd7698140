package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/crownstore/internal/common"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random six-digit code.
func GenerateOTP() (string, error) {
	n, err := common.RandomInt(otpMin, otpMax)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}

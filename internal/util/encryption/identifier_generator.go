package encryption

import (
	"crypto/rand"
	"math/big"
)

const (
	ShareIDLength = 6
	OTPLength     = 6

	shareIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	otpDigits       = "0123456789"
)

// GenerateShareID creates a 6-character alphanumeric share code. The code
// is the public URL path segment, so the alphabet stays URL-safe.
// Uniqueness against live shares is the caller's responsibility.
func GenerateShareID() string {
	return randomString(shareIDAlphabet, ShareIDLength)
}

// GenerateOTP creates a 6-digit numeric one-time password in the range
// 100000-999999. The OTP is always handled as a string.
func GenerateOTP() string {
	otp := make([]byte, OTPLength)
	otp[0] = randomChar(otpDigits[1:])
	for i := 1; i < OTPLength; i++ {
		otp[i] = randomChar(otpDigits)
	}
	return string(otp)
}

func randomString(charset string, length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = randomChar(charset)
	}
	return string(result)
}

func randomChar(charset string) byte {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return charset[0]
	}
	return charset[n.Int64()]
}

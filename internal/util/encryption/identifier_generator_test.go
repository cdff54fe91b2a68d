package encryption

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateShareID_ReturnsSixAlphanumericChars(t *testing.T) {
	for i := 0; i < 100; i++ {
		shareID := GenerateShareID()

		assert.Len(t, shareID, ShareIDLength)
		for _, char := range shareID {
			isLower := char >= 'a' && char <= 'z'
			isUpper := char >= 'A' && char <= 'Z'
			isDigit := char >= '0' && char <= '9'
			assert.True(t, isLower || isUpper || isDigit, "unexpected character %q", char)
		}
	}
}

func Test_GenerateShareID_ProducesDistinctValues(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		seen[GenerateShareID()] = true
	}

	// 62^6 combinations; 100 draws colliding down to a handful would
	// mean a broken random source.
	assert.Greater(t, len(seen), 95)
}

func Test_GenerateOTP_ReturnsSixDigitsWithoutLeadingZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateOTP()

		assert.Len(t, otp, OTPLength)

		value, err := strconv.Atoi(otp)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, value, 100000)
		assert.LessOrEqual(t, value, 999999)
	}
}

package shares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_ToDuration_ReturnsExactDurationForEveryPeriod(t *testing.T) {
	cases := []struct {
		period   ExpiryPeriod
		expected time.Duration
	}{
		{ExpiryPeriod10Minutes, 10 * time.Minute},
		{ExpiryPeriod1Hour, 1 * time.Hour},
		{ExpiryPeriod24Hours, 24 * time.Hour},
		{ExpiryPeriod7Days, 7 * 24 * time.Hour},
		{ExpiryPeriod30Days, 30 * 24 * time.Hour},
	}

	for _, c := range cases {
		duration, err := c.period.ToDuration(0)

		assert.NoError(t, err)
		assert.Equal(t, c.expected, duration)
	}
}

func Test_ToDuration_CustomPeriod_UsesCustomHours(t *testing.T) {
	duration, err := ExpiryPeriodCustom.ToDuration(36)

	assert.NoError(t, err)
	assert.Equal(t, 36*time.Hour, duration)
}

func Test_ToDuration_CustomPeriodOutOfRange_ReturnsError(t *testing.T) {
	_, err := ExpiryPeriodCustom.ToDuration(0)
	assert.Error(t, err)

	_, err = ExpiryPeriodCustom.ToDuration(721)
	assert.Error(t, err)
}

func Test_ToDuration_UnknownPeriod_ReturnsError(t *testing.T) {
	_, err := ExpiryPeriod("NEVER").ToDuration(0)

	assert.Error(t, err)
}

func Test_IsValid_AcceptsAllKnownPeriodsAndRejectsOthers(t *testing.T) {
	valid := []ExpiryPeriod{
		ExpiryPeriod10Minutes,
		ExpiryPeriod1Hour,
		ExpiryPeriod24Hours,
		ExpiryPeriod7Days,
		ExpiryPeriod30Days,
		ExpiryPeriodCustom,
	}

	for _, period := range valid {
		assert.True(t, period.IsValid(), "period %s should be valid", period)
	}

	assert.False(t, ExpiryPeriod("").IsValid())
	assert.False(t, ExpiryPeriod("2_DAYS").IsValid())
}

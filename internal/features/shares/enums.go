package shares

import (
	"fmt"
	"time"
)

type ExpiryPeriod string

const (
	ExpiryPeriod10Minutes ExpiryPeriod = "10_MINUTES"
	ExpiryPeriod1Hour     ExpiryPeriod = "1_HOUR"
	ExpiryPeriod24Hours   ExpiryPeriod = "24_HOURS"
	ExpiryPeriod7Days     ExpiryPeriod = "7_DAYS"
	ExpiryPeriod30Days    ExpiryPeriod = "30_DAYS"
	ExpiryPeriodCustom    ExpiryPeriod = "CUSTOM"
)

const (
	minCustomExpiryHours = 1
	maxCustomExpiryHours = 720
)

func (p ExpiryPeriod) IsValid() bool {
	switch p {
	case ExpiryPeriod10Minutes,
		ExpiryPeriod1Hour,
		ExpiryPeriod24Hours,
		ExpiryPeriod7Days,
		ExpiryPeriod30Days,
		ExpiryPeriodCustom:
		return true
	default:
		return false
	}
}

// ToDuration converts the period to the exact share lifespan. customHours
// is only consulted for CUSTOM and must stay within 1..720 hours.
func (p ExpiryPeriod) ToDuration(customHours int) (time.Duration, error) {
	switch p {
	case ExpiryPeriod10Minutes:
		return 10 * time.Minute, nil
	case ExpiryPeriod1Hour:
		return 1 * time.Hour, nil
	case ExpiryPeriod24Hours:
		return 24 * time.Hour, nil
	case ExpiryPeriod7Days:
		return 7 * 24 * time.Hour, nil
	case ExpiryPeriod30Days:
		return 30 * 24 * time.Hour, nil
	case ExpiryPeriodCustom:
		if customHours < minCustomExpiryHours || customHours > maxCustomExpiryHours {
			return 0, fmt.Errorf(
				"custom expiry must be between %d and %d hours, got %d",
				minCustomExpiryHours,
				maxCustomExpiryHours,
				customHours,
			)
		}
		return time.Duration(customHours) * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown expiry period: %s", p)
	}
}

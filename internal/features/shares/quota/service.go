package shares_quota

import (
	"fmt"
	"log/slog"
	"time"

	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
)

// Day buckets outlive the calendar day they account for so that uploads
// close to midnight still count against the right day.
const quotaBucketTTL = 48 * time.Hour

type QuotaExceededError struct {
	RemainingBytes int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf(
		"daily upload quota exceeded, %d bytes remaining today",
		e.RemainingBytes,
	)
}

// UploadQuotaService enforces the per-client daily upload volume cap.
// Usage is an atomic valkey counter keyed by client identity and calendar
// day, so concurrent uploads from one client cannot slip past the cap.
type UploadQuotaService struct {
	counter  *cache_utils.Counter
	capBytes int64
	logger   *slog.Logger
}

// Reserve adds newBytes to the client's usage for the given day and fails
// with QuotaExceededError when the cap would be exceeded. A failed
// reservation is rolled back so it never counts against the client.
func (s *UploadQuotaService) Reserve(clientID string, newBytes int64, now time.Time) error {
	key := dayKey(clientID, now)

	usage, err := s.counter.IncrBy(key, newBytes, quotaBucketTTL)
	if err != nil {
		return fmt.Errorf("failed to reserve upload quota: %w", err)
	}

	if usage > s.capBytes {
		if _, err := s.counter.DecrBy(key, newBytes); err != nil {
			s.logger.Error("Failed to roll back quota reservation", "clientId", clientID, "error", err)
		}

		remaining := s.capBytes - (usage - newBytes)
		if remaining < 0 {
			remaining = 0
		}

		return &QuotaExceededError{RemainingBytes: remaining}
	}

	return nil
}

// Release compensates a reservation when share creation fails after the
// quota was already taken.
func (s *UploadQuotaService) Release(clientID string, bytes int64, now time.Time) {
	if _, err := s.counter.DecrBy(dayKey(clientID, now), bytes); err != nil {
		s.logger.Error("Failed to release upload quota", "clientId", clientID, "error", err)
	}
}

func (s *UploadQuotaService) DailyUsage(clientID string, now time.Time) (int64, error) {
	return s.counter.Get(dayKey(clientID, now))
}

func dayKey(clientID string, now time.Time) string {
	return clientID + ":" + now.UTC().Format("2006-01-02")
}

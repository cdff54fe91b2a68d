package shares_cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/features/shares"
	shares_download "github.com/bisweshmaharana/blizz-share/internal/features/shares/download"
	"github.com/bisweshmaharana/blizz-share/internal/storage/payloads"
)

// ExpiredShareCleanupService purges shares past their TTL: payload
// objects first, then tracking rows, then the record itself. Per-request
// expiry checks stay independent of this sweep, so a share is dead the
// moment its TTL passes even if the sweeper lags behind.
type ExpiredShareCleanupService struct {
	shareRepository    *shares.ShareRepository
	trackingRepository *shares_download.DownloadTrackingRepository
	payloadStorage     payloads.PayloadStorage
	logger             *slog.Logger
}

func (s *ExpiredShareCleanupService) CleanupExpiredShares(ctx context.Context) error {
	expired, err := s.shareRepository.FindExpired(time.Now().UTC())
	if err != nil {
		return err
	}

	if len(expired) == 0 {
		return nil
	}

	purged := 0
	for _, share := range expired {
		if err := s.purgeShare(ctx, share); err != nil {
			s.logger.Error("Failed to purge expired share",
				"shareId", share.ShareID,
				"error", err,
			)
			continue
		}
		purged++
	}

	s.logger.Info("Purged expired shares", "purged", purged, "expired", len(expired))
	return nil
}

func (s *ExpiredShareCleanupService) purgeShare(ctx context.Context, share *shares.Share) error {
	for _, file := range share.Files {
		if err := s.payloadStorage.Delete(ctx, file.StorageKey); err != nil {
			// Keep the record so the next sweep retries the payload.
			return err
		}
	}

	if err := s.trackingRepository.DeleteByShareRecordID(share.ID); err != nil {
		return err
	}

	return s.shareRepository.Delete(share.ID)
}

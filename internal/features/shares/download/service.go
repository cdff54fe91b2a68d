package shares_download

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/features/shares"

	"gorm.io/gorm"
)

const accessHistoryLimit = 50

// accessNotifier delivers best-effort owner notifications; swapped for a
// mock in tests.
type accessNotifier interface {
	NotifyShareAccessed(shareID string, ownerEmail string, downloadCount int64)
}

type DownloadTrackingService struct {
	trackingRepository *DownloadTrackingRepository
	shareRepository    *shares.ShareRepository
	notifier           accessNotifier
	logger             *slog.Logger
}

// TrackDownload counts a download at most once per client fingerprint.
// The tracking row is inserted before the counter increment: if the
// process dies in between, a retry sees the existing row and
// short-circuits instead of double counting.
func (s *DownloadTrackingService) TrackDownload(
	shareID string,
	fingerprint string,
) (*TrackDownloadResponse, error) {
	share, err := s.shareRepository.FindByShareID(shareID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}
	if share == nil {
		return nil, shares.ErrShareNotFound
	}
	if share.IsExpired(time.Now().UTC()) {
		return nil, shares.ErrShareExpired
	}

	alreadyTracked, err := s.trackingRepository.Exists(share.ID, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}
	if alreadyTracked {
		return &TrackDownloadResponse{DownloadCount: share.DownloadCount}, nil
	}

	entry := &DownloadTracking{
		ShareRecordID: share.ID,
		Fingerprint:   fingerprint,
	}
	if err := s.trackingRepository.Create(entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request with the same fingerprint won the
			// race past the Exists check; the download is already
			// counted.
			return s.currentCount(shareID, share.DownloadCount)
		}
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}

	count, err := s.shareRepository.IncrementDownloadCount(share.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}

	if err := s.trackingRepository.CreateAccessRecord(&AccessRecord{
		ShareRecordID: share.ID,
		AccessType:    AccessTypeDownload,
	}); err != nil {
		s.logger.Error("Failed to record access history", "shareId", shareID, "error", err)
	}

	s.logger.Info("Tracked download", "shareId", shareID, "downloadCount", count)

	if share.NotifyOnAccess && share.OwnerEmail != nil {
		// Fire and forget: notification failures never affect the download.
		go s.notifier.NotifyShareAccessed(share.ShareID, *share.OwnerEmail, count)
	}

	return &TrackDownloadResponse{DownloadCount: count}, nil
}

func (s *DownloadTrackingService) currentCount(
	shareID string,
	fallback int64,
) (*TrackDownloadResponse, error) {
	share, err := s.shareRepository.FindByShareID(shareID)
	if err != nil || share == nil {
		return &TrackDownloadResponse{DownloadCount: fallback}, nil
	}

	return &TrackDownloadResponse{DownloadCount: share.DownloadCount}, nil
}

func (s *DownloadTrackingService) GetDownloadStats(
	shareID string,
) (*DownloadStatsResponse, error) {
	share, err := s.shareRepository.FindByShareID(shareID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}
	if share == nil {
		return nil, shares.ErrShareNotFound
	}
	if share.IsExpired(time.Now().UTC()) {
		return nil, shares.ErrShareExpired
	}

	lastDownloadAt, err := s.trackingRepository.LastDownloadAt(share.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}

	records, err := s.trackingRepository.ListAccessRecords(share.ID, accessHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shares.ErrStoreUnavailable, err)
	}

	history := make([]AccessRecordResponse, 0, len(records))
	for _, record := range records {
		history = append(history, AccessRecordResponse{
			AccessType: record.AccessType,
			Timestamp:  record.CreatedAt,
		})
	}

	return &DownloadStatsResponse{
		Downloads:      share.DownloadCount,
		LastDownloadAt: lastDownloadAt,
		History:        history,
	}, nil
}

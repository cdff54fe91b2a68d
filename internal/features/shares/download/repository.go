package shares_download

import (
	"errors"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DownloadTrackingRepository struct{}

func (r *DownloadTrackingRepository) Exists(
	shareRecordID uuid.UUID,
	fingerprint string,
) (bool, error) {
	var count int64

	err := storage.GetDb().Model(&DownloadTracking{}).
		Where("share_record_id = ? AND fingerprint = ?", shareRecordID, fingerprint).
		Count(&count).Error

	return count > 0, err
}

func (r *DownloadTrackingRepository) Create(entry *DownloadTracking) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(entry).Error
}

func (r *DownloadTrackingRepository) LastDownloadAt(
	shareRecordID uuid.UUID,
) (*time.Time, error) {
	var entry DownloadTracking

	err := storage.GetDb().
		Where("share_record_id = ?", shareRecordID).
		Order("created_at DESC").
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry.CreatedAt, nil
}

func (r *DownloadTrackingRepository) CreateAccessRecord(record *AccessRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(record).Error
}

func (r *DownloadTrackingRepository) ListAccessRecords(
	shareRecordID uuid.UUID,
	limit int,
) ([]*AccessRecord, error) {
	var records []*AccessRecord

	err := storage.GetDb().
		Where("share_record_id = ?", shareRecordID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteByShareRecordID removes tracking rows and access history for a
// purged share.
func (r *DownloadTrackingRepository) DeleteByShareRecordID(shareRecordID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("share_record_id = ?", shareRecordID).
			Delete(&DownloadTracking{}).Error; err != nil {
			return err
		}

		return tx.Where("share_record_id = ?", shareRecordID).
			Delete(&AccessRecord{}).Error
	})
}

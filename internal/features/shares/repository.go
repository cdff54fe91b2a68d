package shares

import (
	"errors"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareRepository struct{}

// Create persists the share record and its file rows in one transaction,
// so a share never exists without its files.
func (r *ShareRepository) Create(share *Share) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now().UTC()
	}

	for i := range share.Files {
		if share.Files[i].ID == uuid.Nil {
			share.Files[i].ID = uuid.New()
		}
		share.Files[i].ShareRecordID = share.ID
		share.Files[i].Position = i
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Files").Create(share).Error; err != nil {
			return err
		}

		if err := tx.Create(&share.Files).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *ShareRepository) FindByShareID(shareID string) (*Share, error) {
	var share Share

	err := storage.GetDb().
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("share_id = ?", shareID).
		First(&share).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &share, nil
}

// FindLatestByOTP returns the most recent record carrying the OTP, live or
// not. Callers decide between "invalid" and "expired" from the record.
func (r *ShareRepository) FindLatestByOTP(otp string) (*Share, error) {
	var share Share

	err := storage.GetDb().
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("otp = ?", otp).
		Order("created_at DESC").
		First(&share).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) ExistsLiveShareID(shareID string, now time.Time) (bool, error) {
	var count int64

	err := storage.GetDb().Model(&Share{}).
		Where("share_id = ? AND expires_at > ?", shareID, now).
		Count(&count).Error

	return count > 0, err
}

func (r *ShareRepository) ExistsLiveOTP(otp string, now time.Time) (bool, error) {
	var count int64

	err := storage.GetDb().Model(&Share{}).
		Where("otp = ? AND expires_at > ?", otp, now).
		Count(&count).Error

	return count > 0, err
}

// IncrementDownloadCount bumps the counter by exactly 1 in a single SQL
// statement and returns the new value.
func (r *ShareRepository) IncrementDownloadCount(id uuid.UUID) (int64, error) {
	db := storage.GetDb()

	err := db.Model(&Share{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.Model(&Share{}).
		Where("id = ?", id).
		Pluck("download_count", &count).Error

	return count, err
}

func (r *ShareRepository) FindExpired(before time.Time) ([]*Share, error) {
	var expired []*Share

	err := storage.GetDb().
		Preload("Files").
		Where("expires_at < ?", before).
		Find(&expired).Error

	if err != nil {
		return nil, err
	}

	return expired, nil
}

// Delete removes the record and its file rows. Payload objects are the
// caller's responsibility.
func (r *ShareRepository) Delete(id uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("share_record_id = ?", id).Delete(&ShareFile{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&Share{}).Error
	})
}

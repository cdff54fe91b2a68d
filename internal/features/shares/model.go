package shares

import (
	"time"

	"github.com/google/uuid"
)

type Share struct {
	ID uuid.UUID `json:"id" gorm:"column:id;primaryKey"`

	// ShareID is the public 6-character code used as the URL path segment.
	ShareID string `json:"shareId" gorm:"column:share_id;uniqueIndex;not null"`
	OTP     string `json:"-"       gorm:"column:otp;index;not null"`

	PasswordHash   *string `json:"-"              gorm:"column:password_hash"`
	NotifyOnAccess bool    `json:"notifyOnAccess" gorm:"column:notify_on_access;not null;default:false"`
	OwnerEmail     *string `json:"-" gorm:"column:owner_email"`

	DownloadCount int64     `json:"downloadCount" gorm:"column:download_count;not null;default:0"`
	CreatedAt     time.Time `json:"createdAt"     gorm:"column:created_at;not null"`
	ExpiresAt     time.Time `json:"expiresAt"     gorm:"column:expires_at;not null;index"`

	Files []ShareFile `json:"files" gorm:"foreignKey:ShareRecordID;references:ID"`
}

func (Share) TableName() string {
	return "shares"
}

func (s *Share) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (s *Share) IsPasswordProtected() bool {
	return s.PasswordHash != nil && *s.PasswordHash != ""
}

func (s *Share) TotalSizeBytes() int64 {
	var total int64
	for _, file := range s.Files {
		total += file.SizeBytes
	}
	return total
}

type ShareFile struct {
	ID            uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	ShareRecordID uuid.UUID `json:"-"         gorm:"column:share_record_id;index;not null"`
	Name          string    `json:"name"      gorm:"column:name;not null"`
	SizeBytes     int64     `json:"sizeBytes" gorm:"column:size_bytes;not null"`

	// StorageKey is the opaque payload store reference. It is never
	// disclosed to clients; downloads go through presigned URLs.
	StorageKey string `json:"-" gorm:"column:storage_key;not null"`
	Position   int    `json:"-" gorm:"column:position;not null"`
}

func (ShareFile) TableName() string {
	return "share_files"
}

package shares_download

import (
	"time"

	"github.com/google/uuid"
)

// DownloadTracking deduplicates download counting: one row per
// (share, fingerprint) pair. Rows are only inserted and checked for
// existence, never updated.
type DownloadTracking struct {
	ID            uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	ShareRecordID uuid.UUID `json:"-"           gorm:"column:share_record_id;uniqueIndex:idx_share_fingerprint;not null"`
	Fingerprint   string    `json:"fingerprint" gorm:"column:fingerprint;uniqueIndex:idx_share_fingerprint;not null"`
	CreatedAt     time.Time `json:"createdAt"   gorm:"column:created_at;not null"`
}

func (DownloadTracking) TableName() string {
	return "share_download_tracking"
}

type AccessType string

const (
	AccessTypeView     AccessType = "VIEW"
	AccessTypeDownload AccessType = "DOWNLOAD"
)

// AccessRecord is the per-share access history exposed through the stats
// endpoint.
type AccessRecord struct {
	ID            uuid.UUID  `json:"id"         gorm:"column:id;primaryKey"`
	ShareRecordID uuid.UUID  `json:"-"          gorm:"column:share_record_id;index;not null"`
	AccessType    AccessType `json:"accessType" gorm:"column:access_type;not null"`
	CreatedAt     time.Time  `json:"createdAt"  gorm:"column:created_at;not null"`
}

func (AccessRecord) TableName() string {
	return "share_access_records"
}

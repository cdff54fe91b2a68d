package shares_cleanup

import (
	"sync"

	"github.com/bisweshmaharana/blizz-share/internal/features/shares"
	shares_download "github.com/bisweshmaharana/blizz-share/internal/features/shares/download"
	"github.com/bisweshmaharana/blizz-share/internal/storage/payloads"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"
)

var (
	once sync.Once

	cleanupService           *ExpiredShareCleanupService
	cleanupBackgroundService *ExpiredShareCleanupBackgroundService
)

func setup() {
	once.Do(func() {
		cleanupService = &ExpiredShareCleanupService{
			shares.GetShareRepository(),
			shares_download.GetDownloadTrackingRepository(),
			payloads.GetPayloadStorage(),
			logger.GetLogger(),
		}

		cleanupBackgroundService = &ExpiredShareCleanupBackgroundService{
			cleanupService: cleanupService,
			logger:         logger.GetLogger(),
		}
	})
}

func GetExpiredShareCleanupService() *ExpiredShareCleanupService {
	setup()
	return cleanupService
}

func GetExpiredShareCleanupBackgroundService() *ExpiredShareCleanupBackgroundService {
	setup()
	return cleanupBackgroundService
}

package shares_download

import (
	"sync"

	"github.com/bisweshmaharana/blizz-share/internal/features/notifications"
	"github.com/bisweshmaharana/blizz-share/internal/features/shares"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"
)

var (
	once sync.Once

	downloadTrackingRepository *DownloadTrackingRepository
	downloadTrackingService    *DownloadTrackingService
	downloadTrackingController *DownloadTrackingController
)

func setup() {
	once.Do(func() {
		downloadTrackingRepository = &DownloadTrackingRepository{}

		downloadTrackingService = &DownloadTrackingService{
			downloadTrackingRepository,
			shares.GetShareRepository(),
			notifications.GetAccessNotifier(),
			logger.GetLogger(),
		}

		downloadTrackingController = &DownloadTrackingController{
			downloadTrackingService,
		}
	})
}

func GetDownloadTrackingRepository() *DownloadTrackingRepository {
	setup()
	return downloadTrackingRepository
}

func GetDownloadTrackingService() *DownloadTrackingService {
	setup()
	return downloadTrackingService
}

func GetDownloadTrackingController() *DownloadTrackingController {
	setup()
	return downloadTrackingController
}

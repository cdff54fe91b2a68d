package shares_quota

import (
	"sync"

	"github.com/bisweshmaharana/blizz-share/internal/config"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"
)

var (
	once               sync.Once
	uploadQuotaService *UploadQuotaService
)

func GetUploadQuotaService() *UploadQuotaService {
	once.Do(func() {
		uploadQuotaService = &UploadQuotaService{
			cache_utils.NewCounter(cache_utils.GetValkeyClient(), "upload_quota:"),
			config.GetEnv().DailyUploadCapBytes,
			logger.GetLogger(),
		}
	})

	return uploadQuotaService
}

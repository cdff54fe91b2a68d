package shares

import (
	"sync"

	"github.com/bisweshmaharana/blizz-share/internal/config"
	shares_quota "github.com/bisweshmaharana/blizz-share/internal/features/shares/quota"
	"github.com/bisweshmaharana/blizz-share/internal/storage/payloads"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"
)

var shareRepository = &ShareRepository{}

var (
	once sync.Once

	shareService    *ShareService
	shareController *ShareController
)

func setup() {
	once.Do(func() {
		shareService = &ShareService{
			shareRepository,
			payloads.GetPayloadStorage(),
			shares_quota.GetUploadQuotaService(),
			logger.GetLogger(),
			config.GetEnv().AppURL,
			cache_utils.NewCacheUtil[string](cache_utils.GetValkeyClient(), "otp_share_id:"),
		}

		shareController = &ShareController{
			shareService,
			cache_utils.NewRateLimiter(cache_utils.GetValkeyClient()),
		}
	})
}

func GetShareRepository() *ShareRepository {
	return shareRepository
}

func GetShareService() *ShareService {
	setup()
	return shareService
}

func GetShareController() *ShareController {
	setup()
	return shareController
}

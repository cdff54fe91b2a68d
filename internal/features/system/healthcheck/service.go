package system_healthcheck

import (
	"context"
	"errors"

	"github.com/bisweshmaharana/blizz-share/internal/storage"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
)

type HealthcheckService struct{}

func (s *HealthcheckService) IsHealthy() error {
	db := storage.GetDb()
	if err := db.Raw("SELECT 1").Error; err != nil {
		return errors.New("cannot connect to the database")
	}

	client := cache_utils.GetValkeyClient()
	ctx, cancel := context.WithTimeout(context.Background(), cache_utils.DefaultCacheTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		return errors.New("cannot connect to the cache")
	}

	return nil
}

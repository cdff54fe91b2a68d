package payloads

import (
	"sync"

	"github.com/bisweshmaharana/blizz-share/internal/config"
)

var (
	once           sync.Once
	payloadStorage PayloadStorage
)

func GetPayloadStorage() PayloadStorage {
	once.Do(func() {
		storage, err := NewS3PayloadStorage(config.GetEnv())
		if err != nil {
			panic("failed to initialize payload storage: " + err.Error())
		}

		payloadStorage = storage
	})

	return payloadStorage
}

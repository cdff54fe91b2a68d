package shares_cleanup

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/features/shares"
	shares_download "github.com/bisweshmaharana/blizz-share/internal/features/shares/download"
	"github.com/bisweshmaharana/blizz-share/internal/util/encryption"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"

	"github.com/stretchr/testify/assert"
)

type mockPayloadStorage struct {
	mu          sync.Mutex
	failKeys    map[string]bool
	deletedKeys []string
}

func (m *mockPayloadStorage) Put(context.Context, io.Reader, int64) (string, error) {
	return "", errors.New("not used in cleanup tests")
}

func (m *mockPayloadStorage) PresignGet(context.Context, string, string) (string, error) {
	return "", errors.New("not used in cleanup tests")
}

func (m *mockPayloadStorage) Delete(_ context.Context, storageKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failKeys[storageKey] {
		return errors.New("mock delete failure")
	}

	m.deletedKeys = append(m.deletedKeys, storageKey)
	return nil
}

func newTestCleanupService(payloadStorage *mockPayloadStorage) *ExpiredShareCleanupService {
	return &ExpiredShareCleanupService{
		shareRepository:    shares.GetShareRepository(),
		trackingRepository: &shares_download.DownloadTrackingRepository{},
		payloadStorage:     payloadStorage,
		logger:             logger.GetLogger(),
	}
}

func createShare(t *testing.T, expiresAt time.Time, storageKey string) *shares.Share {
	share := &shares.Share{
		ShareID:   encryption.GenerateShareID(),
		OTP:       encryption.GenerateOTP(),
		CreatedAt: expiresAt.Add(-24 * time.Hour),
		ExpiresAt: expiresAt,
		Files: []shares.ShareFile{
			{Name: "swept.txt", SizeBytes: 64, StorageKey: storageKey},
		},
	}

	err := shares.GetShareRepository().Create(share)
	assert.NoError(t, err)

	return share
}

func Test_CleanupExpiredShares_PurgesExpiredShareAndItsPayloads(t *testing.T) {
	payloadStorage := &mockPayloadStorage{}
	service := newTestCleanupService(payloadStorage)

	storageKey := "test-payloads/expired-" + encryption.GenerateShareID()
	share := createShare(t, time.Now().UTC().Add(-time.Minute), storageKey)

	err := service.CleanupExpiredShares(context.Background())
	assert.NoError(t, err)

	assert.Contains(t, payloadStorage.deletedKeys, storageKey)

	found, err := shares.GetShareRepository().FindByShareID(share.ShareID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func Test_CleanupExpiredShares_LeavesLiveSharesAlone(t *testing.T) {
	payloadStorage := &mockPayloadStorage{}
	service := newTestCleanupService(payloadStorage)

	storageKey := "test-payloads/live-" + encryption.GenerateShareID()
	share := createShare(t, time.Now().UTC().Add(time.Hour), storageKey)

	err := service.CleanupExpiredShares(context.Background())
	assert.NoError(t, err)

	assert.NotContains(t, payloadStorage.deletedKeys, storageKey)

	found, err := shares.GetShareRepository().FindByShareID(share.ShareID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
}

func Test_CleanupExpiredShares_KeepsRecordWhenPayloadDeleteFails(t *testing.T) {
	storageKey := "test-payloads/stuck-" + encryption.GenerateShareID()
	payloadStorage := &mockPayloadStorage{failKeys: map[string]bool{storageKey: true}}
	service := newTestCleanupService(payloadStorage)

	share := createShare(t, time.Now().UTC().Add(-time.Minute), storageKey)

	err := service.CleanupExpiredShares(context.Background())
	assert.NoError(t, err)

	// The record survives so the next sweep can retry the payload delete.
	found, err := shares.GetShareRepository().FindByShareID(share.ShareID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
}

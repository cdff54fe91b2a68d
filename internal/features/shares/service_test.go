package shares

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	shares_quota "github.com/bisweshmaharana/blizz-share/internal/features/shares/quota"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
	"github.com/bisweshmaharana/blizz-share/internal/util/encryption"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockPayloadStorage struct {
	mu          sync.Mutex
	putCount    int
	failPutFrom int
	deletedKeys []string
}

func (m *mockPayloadStorage) Put(_ context.Context, reader io.Reader, _ int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.putCount++
	if m.failPutFrom > 0 && m.putCount >= m.failPutFrom {
		return "", errors.New("mock put failure")
	}

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}

	return "test-payloads/" + uuid.New().String(), nil
}

func (m *mockPayloadStorage) PresignGet(
	_ context.Context,
	storageKey string,
	filename string,
) (string, error) {
	return fmt.Sprintf("https://payloads.test/%s?filename=%s", storageKey, filename), nil
}

func (m *mockPayloadStorage) Delete(_ context.Context, storageKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletedKeys = append(m.deletedKeys, storageKey)
	return nil
}

type fakeQuota struct {
	mu            sync.Mutex
	reserveErr    error
	reservedBytes []int64
	releasedBytes []int64
}

func (f *fakeQuota) Reserve(_ string, newBytes int64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.reserveErr != nil {
		return f.reserveErr
	}

	f.reservedBytes = append(f.reservedBytes, newBytes)
	return nil
}

func (f *fakeQuota) Release(_ string, bytes int64, _ time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.releasedBytes = append(f.releasedBytes, bytes)
}

func newTestShareService(payloadStorage *mockPayloadStorage, quota *fakeQuota) *ShareService {
	return &ShareService{
		shareRepository: &ShareRepository{},
		payloadStorage:  payloadStorage,
		quotaService:    quota,
		logger:          logger.GetLogger(),
		appURL:          "http://localhost:4005",
	}
}

func testUploads(names ...string) []FileUpload {
	uploads := make([]FileUpload, 0, len(names))
	for _, name := range names {
		content := []byte("payload of " + name)
		uploads = append(uploads, FileUpload{
			Name:      name,
			SizeBytes: int64(len(content)),
			Reader:    bytes.NewReader(content),
		})
	}
	return uploads
}

func Test_CreateShare_WithEmptyFileSet_ReturnsValidationError(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	_, err := service.CreateShare(context.Background(), "client-1", nil, CreateShareOptions{})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func Test_CreateShare_WithUnknownExpiry_ReturnsValidationError(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	_, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt"),
		CreateShareOptions{Expiry: ExpiryPeriod("FOREVER")},
	)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func Test_CreateShare_WhenQuotaExceeded_UploadsNothing(t *testing.T) {
	payloadStorage := &mockPayloadStorage{}
	quota := &fakeQuota{
		reserveErr: &shares_quota.QuotaExceededError{RemainingBytes: 1024},
	}
	service := newTestShareService(payloadStorage, quota)

	_, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt", "b.txt"),
		CreateShareOptions{},
	)

	var quotaErr *shares_quota.QuotaExceededError
	assert.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, int64(1024), quotaErr.RemainingBytes)
	assert.Equal(t, 0, payloadStorage.putCount)
}

func Test_CreateShare_WhenPayloadUploadFails_ReleasesQuotaAndCleansUp(t *testing.T) {
	payloadStorage := &mockPayloadStorage{failPutFrom: 2}
	quota := &fakeQuota{}
	service := newTestShareService(payloadStorage, quota)

	_, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt", "b.txt"),
		CreateShareOptions{},
	)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Len(t, payloadStorage.deletedKeys, 1, "first payload must be rolled back")
	assert.Len(t, quota.releasedBytes, 1, "quota reservation must be released")
}

func Test_CreateShare_ThenFindByShareID_PreservesFileNamesSizesAndOrder(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})
	uploads := testUploads("first.pdf", "second.png", "third.zip")

	response, err := service.CreateShare(
		context.Background(),
		"client-1",
		uploads,
		CreateShareOptions{},
	)
	assert.NoError(t, err)
	assert.Len(t, response.ShareID, encryption.ShareIDLength)
	assert.Len(t, response.OTP, encryption.OTPLength)
	assert.Equal(t, "http://localhost:4005/"+response.ShareID, response.ShareURL)

	share, err := service.shareRepository.FindByShareID(response.ShareID)
	assert.NoError(t, err)
	assert.NotNil(t, share)
	assert.Len(t, share.Files, 3)

	for i, upload := range uploads {
		assert.Equal(t, upload.Name, share.Files[i].Name)
		assert.Equal(t, upload.SizeBytes, share.Files[i].SizeBytes)
	}
}

func Test_CreateShare_SetsExpiryExactlyFromPeriod(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	response, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt"),
		CreateShareOptions{Expiry: ExpiryPeriod7Days},
	)
	assert.NoError(t, err)

	share, err := service.shareRepository.FindByShareID(response.ShareID)
	assert.NoError(t, err)
	assert.NotNil(t, share)
	assert.Equal(t, 7*24*time.Hour, share.ExpiresAt.Sub(share.CreatedAt))
}

func Test_VerifyOTP_WithMalformedOTP_ReturnsValidationError(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	for _, otp := range []string{"", "12345", "1234567", "abcdef"} {
		_, err := service.VerifyOTP(otp)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr, "otp %q must be rejected before lookup", otp)
	}
}

func Test_VerifyOTP_WithUnknownOTP_ReturnsInvalidOTP(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	// The generator never produces a leading zero, so this OTP cannot
	// belong to any share.
	_, err := service.VerifyOTP("000000")

	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func Test_VerifyOTP_WithExpiredShare_ReturnsExpiredNotInvalid(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})
	share := createExpiredShare(t, service.shareRepository)

	_, err := service.VerifyOTP(share.OTP)

	assert.ErrorIs(t, err, ErrShareExpired)
	assert.NotErrorIs(t, err, ErrInvalidOTP)
}

func Test_VerifyOTP_WithLiveShare_ReturnsMetadataBeforeAnyDownload(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	created, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("report.pdf", "photo.png", "archive.zip"),
		CreateShareOptions{Expiry: ExpiryPeriod24Hours},
	)
	assert.NoError(t, err)

	response, err := service.VerifyOTP(created.OTP)
	assert.NoError(t, err)
	assert.Equal(t, created.ShareID, response.ShareID)
	assert.False(t, response.PasswordRequired)
	assert.Len(t, response.Files, 3)
	assert.Equal(t, "report.pdf", response.Files[0].Name)
}

func Test_GetDownloadHandles_WithWrongOTP_ReturnsInvalidOTP(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	created, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt"),
		CreateShareOptions{},
	)
	assert.NoError(t, err)

	wrongOTP := "999999"
	if created.OTP == wrongOTP {
		wrongOTP = "999998"
	}

	_, err = service.GetDownloadHandles(context.Background(), created.ShareID, wrongOTP, "")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func Test_GetDownloadHandles_PasswordGate(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	created, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("secret.txt"),
		CreateShareOptions{Password: "hunter2"},
	)
	assert.NoError(t, err)

	_, err = service.GetDownloadHandles(context.Background(), created.ShareID, created.OTP, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = service.GetDownloadHandles(context.Background(), created.ShareID, created.OTP, "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	response, err := service.GetDownloadHandles(
		context.Background(),
		created.ShareID,
		created.OTP,
		"hunter2",
	)
	assert.NoError(t, err)
	assert.Len(t, response.Files, 1)
	assert.Equal(t, "secret.txt", response.Files[0].Name)
	assert.Contains(t, response.Files[0].DownloadURL, "https://payloads.test/")
}

func Test_GetDownloadHandles_WithoutPassword_SucceedsImmediatelyAfterVerify(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	created, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("open.txt"),
		CreateShareOptions{},
	)
	assert.NoError(t, err)

	response, err := service.GetDownloadHandles(
		context.Background(),
		created.ShareID,
		created.OTP,
		"",
	)
	assert.NoError(t, err)
	assert.Len(t, response.Files, 1)
	assert.NotEmpty(t, response.Files[0].DownloadURL)
}

func newMirrorShareService() (*ShareService, *cache_utils.CacheUtil[string]) {
	mirror := cache_utils.NewCacheUtil[string](
		cache_utils.GetValkeyClient(),
		"test_otp_share_id:",
	)

	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})
	service.otpShareIDCache = mirror

	return service, mirror
}

func Test_ResolveShareID_WithStaleMirrorEntry_FallsBackToDatabase(t *testing.T) {
	service, mirror := newMirrorShareService()

	created, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt"),
		CreateShareOptions{},
	)
	assert.NoError(t, err)

	stale := "zzzzzz"
	mirror.SetWithTTL(created.OTP, &stale, time.Minute)

	shareID, err := service.ResolveShareID(created.OTP)
	assert.NoError(t, err)
	assert.Equal(t, created.ShareID, shareID)

	// The stale entry is replaced with the verified mapping.
	cached := mirror.Get(created.OTP)
	assert.NotNil(t, cached)
	assert.Equal(t, created.ShareID, *cached)
}

func Test_ResolveShareID_WithPoisonedMirrorEntry_DoesNotLeakOtherShare(t *testing.T) {
	service, mirror := newMirrorShareService()

	victim, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("victim.txt"),
		CreateShareOptions{},
	)
	assert.NoError(t, err)

	// A mirror entry mapping an OTP nobody holds to a live share must
	// never resolve: the database re-verification rejects the mismatch.
	mirror.SetWithTTL("000000", &victim.ShareID, time.Minute)

	_, err = service.ResolveShareID("000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.Nil(t, mirror.Get("000000"))
}

func Test_ResolveShareID_WithExpiredShareInMirror_ReturnsExpired(t *testing.T) {
	service, mirror := newMirrorShareService()
	expired := createExpiredShare(t, service.shareRepository)

	mirror.SetWithTTL(expired.OTP, &expired.ShareID, time.Minute)

	_, err := service.ResolveShareID(expired.OTP)
	assert.ErrorIs(t, err, ErrShareExpired)
	assert.Nil(t, mirror.Get(expired.OTP))
}

func Test_CheckExists_DistinguishesMissingExpiredAndLive(t *testing.T) {
	service := newTestShareService(&mockPayloadStorage{}, &fakeQuota{})

	_, err := service.CheckExists("zzzzzz")
	assert.ErrorIs(t, err, ErrShareNotFound)

	expired := createExpiredShare(t, service.shareRepository)
	_, err = service.CheckExists(expired.ShareID)
	assert.ErrorIs(t, err, ErrShareExpired)

	created, err := service.CreateShare(
		context.Background(),
		"client-1",
		testUploads("a.txt"),
		CreateShareOptions{Password: "pw"},
	)
	assert.NoError(t, err)

	response, err := service.CheckExists(created.ShareID)
	assert.NoError(t, err)
	assert.True(t, response.Exists)
	assert.True(t, response.PasswordRequired)
}

func createExpiredShare(t *testing.T, repository *ShareRepository) *Share {
	now := time.Now().UTC()

	share := &Share{
		ShareID:   encryption.GenerateShareID(),
		OTP:       encryption.GenerateOTP(),
		CreatedAt: now.Add(-25 * time.Hour),
		ExpiresAt: now.Add(-1 * time.Hour),
		Files: []ShareFile{
			{Name: "stale.txt", SizeBytes: 42, StorageKey: "test-payloads/stale"},
		},
	}

	err := repository.Create(share)
	assert.NoError(t, err)

	return share
}

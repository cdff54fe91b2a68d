package shares

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/bisweshmaharana/blizz-share/internal/storage/payloads"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"
	"github.com/bisweshmaharana/blizz-share/internal/util/encryption"

	"golang.org/x/crypto/bcrypt"
)

const (
	identifierGenerationRetries = 5
	otpMirrorCacheTTL           = 10 * time.Minute
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// uploadQuota is the daily volume cap collaborator, kept as an interface
// so tests can swap in a fake.
type uploadQuota interface {
	Reserve(clientID string, newBytes int64, now time.Time) error
	Release(clientID string, bytes int64, now time.Time)
}

type ShareService struct {
	shareRepository *ShareRepository
	payloadStorage  payloads.PayloadStorage
	quotaService    uploadQuota
	logger          *slog.Logger
	appURL          string

	// otpShareIDCache mirrors OTP -> shareId for the auto-verify UX. It
	// is never authoritative: every hit is re-verified against the
	// database before anything is disclosed. Optional (may be nil).
	otpShareIDCache *cache_utils.CacheUtil[string]
}

// CreateShare validates the upload batch, reserves daily quota, streams
// payloads to the object store and persists the record. Either the record
// and all payloads are persisted, or nothing is: any failure after a
// payload write deletes the written objects and releases the quota.
func (s *ShareService) CreateShare(
	ctx context.Context,
	clientID string,
	uploads []FileUpload,
	options CreateShareOptions,
) (*CreateShareResponse, error) {
	if len(uploads) == 0 {
		return nil, NewValidationError("at least one file is required")
	}
	for _, upload := range uploads {
		if upload.Name == "" {
			return nil, NewValidationError("file name must not be empty")
		}
		if upload.SizeBytes < 0 {
			return nil, NewValidationError("file size must not be negative")
		}
	}

	expiry := options.Expiry
	if expiry == "" {
		expiry = ExpiryPeriod24Hours
	}
	if !expiry.IsValid() {
		return nil, NewValidationError("unknown expiry period: " + string(expiry))
	}

	ttl, err := expiry.ToDuration(options.CustomExpiryHours)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	var totalBytes int64
	for _, upload := range uploads {
		totalBytes += upload.SizeBytes
	}

	now := time.Now().UTC()

	if err := s.quotaService.Reserve(clientID, totalBytes, now); err != nil {
		return nil, err
	}

	files, err := s.uploadPayloads(ctx, uploads)
	if err != nil {
		s.quotaService.Release(clientID, totalBytes, now)
		return nil, err
	}

	share, err := s.buildShare(files, options, now, ttl)
	if err != nil {
		s.cleanupPayloads(ctx, files)
		s.quotaService.Release(clientID, totalBytes, now)
		return nil, err
	}

	if err := s.shareRepository.Create(share); err != nil {
		s.cleanupPayloads(ctx, files)
		s.quotaService.Release(clientID, totalBytes, now)
		return nil, wrapStoreError(err)
	}

	s.logger.Info("Created share",
		"shareId", share.ShareID,
		"files", len(share.Files),
		"totalBytes", totalBytes,
		"expiresAt", share.ExpiresAt,
	)

	return &CreateShareResponse{
		ShareID:  share.ShareID,
		OTP:      share.OTP,
		ShareURL: s.appURL + "/" + share.ShareID,
	}, nil
}

// CheckExists reports whether a live share sits behind the given ID and
// whether it is password gated. No file metadata is disclosed here.
func (s *ShareService) CheckExists(shareID string) (*ShareExistsResponse, error) {
	share, err := s.shareRepository.FindByShareID(shareID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if share == nil {
		return nil, ErrShareNotFound
	}
	if share.IsExpired(time.Now().UTC()) {
		return nil, ErrShareExpired
	}

	return &ShareExistsResponse{
		Exists:           true,
		PasswordRequired: share.IsPasswordProtected(),
	}, nil
}

// VerifyOTP is the first disclosure step: only after the OTP matches a
// live share are file names and sizes revealed. An OTP belonging to an
// expired share reports expired, never invalid.
func (s *ShareService) VerifyOTP(otp string) (*VerifyOTPResponse, error) {
	if !otpPattern.MatchString(otp) {
		return nil, NewValidationError("OTP must be 6 digits")
	}

	share, err := s.shareRepository.FindLatestByOTP(otp)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if share == nil {
		return nil, ErrInvalidOTP
	}
	if share.IsExpired(time.Now().UTC()) {
		return nil, ErrShareExpired
	}

	if s.otpShareIDCache != nil {
		s.otpShareIDCache.SetWithTTL(otp, &share.ShareID, otpMirrorCacheTTL)
	}

	return &VerifyOTPResponse{
		ShareID:          share.ShareID,
		PasswordRequired: share.IsPasswordProtected(),
		ExpiresAt:        share.ExpiresAt,
		Files:            toFileMetadata(share.Files),
	}, nil
}

// ResolveShareID maps an OTP to its share ID. The mirror cache only
// short-circuits the OTP scan; the record is always re-checked against
// the database.
func (s *ShareService) ResolveShareID(otp string) (string, error) {
	if !otpPattern.MatchString(otp) {
		return "", NewValidationError("OTP must be 6 digits")
	}

	now := time.Now().UTC()

	if s.otpShareIDCache != nil {
		if cached := s.otpShareIDCache.Get(otp); cached != nil {
			share, err := s.shareRepository.FindByShareID(*cached)
			if err == nil && share != nil && share.OTP == otp && !share.IsExpired(now) {
				return share.ShareID, nil
			}
			s.otpShareIDCache.Invalidate(otp)
		}
	}

	share, err := s.shareRepository.FindLatestByOTP(otp)
	if err != nil {
		return "", wrapStoreError(err)
	}
	if share == nil {
		return "", ErrInvalidOTP
	}
	if share.IsExpired(now) {
		return "", ErrShareExpired
	}

	if s.otpShareIDCache != nil {
		s.otpShareIDCache.SetWithTTL(otp, &share.ShareID, otpMirrorCacheTTL)
	}

	return share.ShareID, nil
}

// GetDownloadHandles re-verifies shareID and OTP together (verification
// is stateless across requests), applies the password gate and returns
// time-bounded presigned URLs. Raw storage keys never leave the service.
func (s *ShareService) GetDownloadHandles(
	ctx context.Context,
	shareID string,
	otp string,
	password string,
) (*DownloadHandlesResponse, error) {
	if !otpPattern.MatchString(otp) {
		return nil, NewValidationError("OTP must be 6 digits")
	}

	share, err := s.shareRepository.FindByShareID(shareID)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if share == nil {
		return nil, ErrShareNotFound
	}
	if share.OTP != otp {
		return nil, ErrInvalidOTP
	}
	if share.IsExpired(time.Now().UTC()) {
		return nil, ErrShareExpired
	}

	if share.IsPasswordProtected() {
		if password == "" {
			return nil, ErrPasswordRequired
		}
		if bcrypt.CompareHashAndPassword([]byte(*share.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidPassword
		}
	}

	handles := make([]FileDownloadHandle, 0, len(share.Files))
	for _, file := range share.Files {
		url, err := s.payloadStorage.PresignGet(ctx, file.StorageKey, file.Name)
		if err != nil {
			return nil, wrapStoreError(err)
		}

		handles = append(handles, FileDownloadHandle{
			Name:        file.Name,
			SizeBytes:   file.SizeBytes,
			DownloadURL: url,
		})
	}

	return &DownloadHandlesResponse{Files: handles}, nil
}

func (s *ShareService) uploadPayloads(
	ctx context.Context,
	uploads []FileUpload,
) ([]ShareFile, error) {
	files := make([]ShareFile, 0, len(uploads))

	for _, upload := range uploads {
		storageKey, err := s.payloadStorage.Put(ctx, upload.Reader, upload.SizeBytes)
		if err != nil {
			s.cleanupPayloads(ctx, files)
			return nil, wrapStoreError(err)
		}

		files = append(files, ShareFile{
			Name:       upload.Name,
			SizeBytes:  upload.SizeBytes,
			StorageKey: storageKey,
		})
	}

	return files, nil
}

func (s *ShareService) cleanupPayloads(ctx context.Context, files []ShareFile) {
	for _, file := range files {
		if err := s.payloadStorage.Delete(ctx, file.StorageKey); err != nil {
			s.logger.Error("Failed to clean up payload after aborted share creation",
				"storageKey", file.StorageKey,
				"error", err,
			)
		}
	}
}

func (s *ShareService) buildShare(
	files []ShareFile,
	options CreateShareOptions,
	now time.Time,
	ttl time.Duration,
) (*Share, error) {
	shareID, err := s.generateUniqueShareID(now)
	if err != nil {
		return nil, err
	}

	otp, err := s.generateUniqueOTP(now)
	if err != nil {
		return nil, err
	}

	share := &Share{
		ShareID:        shareID,
		OTP:            otp,
		NotifyOnAccess: options.NotifyOnAccess,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		Files:          files,
	}

	if options.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(options.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashString := string(hash)
		share.PasswordHash = &hashString
	}

	if options.OwnerEmail != "" {
		email := options.OwnerEmail
		share.OwnerEmail = &email
	}

	return share, nil
}

func (s *ShareService) generateUniqueShareID(now time.Time) (string, error) {
	for attempt := 0; attempt < identifierGenerationRetries; attempt++ {
		shareID := encryption.GenerateShareID()

		exists, err := s.shareRepository.ExistsLiveShareID(shareID, now)
		if err != nil {
			return "", wrapStoreError(err)
		}
		if !exists {
			return shareID, nil
		}
	}

	return "", fmt.Errorf(
		"failed to generate a unique share ID after %d attempts",
		identifierGenerationRetries,
	)
}

func (s *ShareService) generateUniqueOTP(now time.Time) (string, error) {
	for attempt := 0; attempt < identifierGenerationRetries; attempt++ {
		otp := encryption.GenerateOTP()

		exists, err := s.shareRepository.ExistsLiveOTP(otp, now)
		if err != nil {
			return "", wrapStoreError(err)
		}
		if !exists {
			return otp, nil
		}
	}

	return "", fmt.Errorf(
		"failed to generate a unique OTP after %d attempts",
		identifierGenerationRetries,
	)
}

func toFileMetadata(files []ShareFile) []FileMetadataResponse {
	metadata := make([]FileMetadataResponse, 0, len(files))
	for _, file := range files {
		metadata = append(metadata, FileMetadataResponse{
			Name:      file.Name,
			SizeBytes: file.SizeBytes,
		})
	}
	return metadata
}

func wrapStoreError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

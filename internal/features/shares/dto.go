package shares

import (
	"io"
	"time"
)

// FileUpload is one incoming file of an upload batch. The reader streams
// the payload straight into the object store.
type FileUpload struct {
	Name      string
	SizeBytes int64
	Reader    io.Reader
}

type CreateShareOptions struct {
	Expiry            ExpiryPeriod
	CustomExpiryHours int
	Password          string
	NotifyOnAccess    bool
	OwnerEmail        string
}

type CreateShareResponse struct {
	ShareID  string `json:"shareId"`
	OTP      string `json:"otp"`
	ShareURL string `json:"shareUrl"`
}

type ShareExistsResponse struct {
	Exists           bool `json:"exists"`
	PasswordRequired bool `json:"passwordRequired"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type FileMetadataResponse struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
}

type VerifyOTPResponse struct {
	ShareID          string                 `json:"shareId"`
	PasswordRequired bool                   `json:"passwordRequired"`
	ExpiresAt        time.Time              `json:"expiresAt"`
	Files            []FileMetadataResponse `json:"files"`
}

type DownloadURLRequest struct {
	OTP      string `json:"otp" binding:"required"`
	Password string `json:"password"`
}

type FileDownloadHandle struct {
	Name        string `json:"name"`
	SizeBytes   int64  `json:"sizeBytes"`
	DownloadURL string `json:"downloadUrl"`
}

type DownloadHandlesResponse struct {
	Files []FileDownloadHandle `json:"files"`
}

type ResolveShareIDResponse struct {
	ShareID string `json:"shareId"`
}

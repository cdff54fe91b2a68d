package shares

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	shares_quota "github.com/bisweshmaharana/blizz-share/internal/features/shares/quota"
	cache_utils "github.com/bisweshmaharana/blizz-share/internal/util/cache"

	"github.com/gin-gonic/gin"
)

const (
	verifyAttemptsPerMinute = 10
)

type ShareController struct {
	shareService *ShareService
	rateLimiter  *cache_utils.RateLimiter
}

func (c *ShareController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/shares", c.CreateShare)
	router.GET("/shares/id-by-otp", c.ResolveShareID)
	router.GET("/shares/:shareId/exists", c.CheckExists)
	router.POST("/shares/verify-otp", c.VerifyOTP)
	router.POST("/shares/:shareId/download-url", c.GetDownloadURL)
}

// CreateShare
// @Summary Upload files and create a share
// @Description Upload one or more files, returns the share code, OTP and share URL
// @Tags shares
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to share"
// @Param password formData string false "Optional password gate"
// @Param expiry formData string false "Expiry period" default(24_HOURS)
// @Param customExpiryHours formData int false "Custom expiry in hours (1-720)"
// @Param notifyOnAccess formData bool false "Notify the owner on download"
// @Param ownerEmail formData string false "Notification target"
// @Success 200 {object} CreateShareResponse
// @Failure 400
// @Failure 413
// @Failure 503
// @Router /shares [post]
func (c *ShareController) CreateShare(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}

	customExpiryHours := 0
	if raw := ctx.PostForm("customExpiryHours"); raw != "" {
		customExpiryHours, err = strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid customExpiryHours"})
			return
		}
	}

	options := CreateShareOptions{
		Expiry:            ExpiryPeriod(ctx.PostForm("expiry")),
		CustomExpiryHours: customExpiryHours,
		Password:          ctx.PostForm("password"),
		NotifyOnAccess:    ctx.PostForm("notifyOnAccess") == "true",
		OwnerEmail:        ctx.PostForm("ownerEmail"),
	}

	uploads := make([]FileUpload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
			return
		}
		defer file.Close()

		uploads = append(uploads, FileUpload{
			Name:      fileHeader.Filename,
			SizeBytes: fileHeader.Size,
			Reader:    file,
		})
	}

	response, err := c.shareService.CreateShare(
		ctx.Request.Context(),
		ctx.ClientIP(),
		uploads,
		options,
	)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CheckExists
// @Summary Check whether a share exists
// @Description Reports existence and password requirement without disclosing file metadata
// @Tags shares
// @Produce json
// @Param shareId path string true "Share code"
// @Success 200 {object} ShareExistsResponse
// @Failure 404
// @Failure 410
// @Router /shares/{shareId}/exists [get]
func (c *ShareController) CheckExists(ctx *gin.Context) {
	response, err := c.shareService.CheckExists(ctx.Param("shareId"))
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// VerifyOTP
// @Summary Verify an OTP
// @Description Returns file metadata and the password requirement for the share behind the OTP
// @Tags shares
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "OTP"
// @Success 200 {object} VerifyOTPResponse
// @Failure 400
// @Failure 404
// @Failure 410
// @Failure 429
// @Router /shares/verify-otp [post]
func (c *ShareController) VerifyOTP(ctx *gin.Context) {
	if !c.allowVerifyAttempt(ctx) {
		return
	}

	var request VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := c.shareService.VerifyOTP(request.OTP)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetDownloadURL
// @Summary Get download URLs for a share
// @Description Re-verifies OTP and password, returns presigned per-file download URLs
// @Tags shares
// @Accept json
// @Produce json
// @Param shareId path string true "Share code"
// @Param request body DownloadURLRequest true "OTP and optional password"
// @Success 200 {object} DownloadHandlesResponse
// @Failure 401
// @Failure 404
// @Failure 410
// @Failure 429
// @Router /shares/{shareId}/download-url [post]
func (c *ShareController) GetDownloadURL(ctx *gin.Context) {
	if !c.allowVerifyAttempt(ctx) {
		return
	}

	var request DownloadURLRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := c.shareService.GetDownloadHandles(
		ctx.Request.Context(),
		ctx.Param("shareId"),
		request.OTP,
		request.Password,
	)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ResolveShareID
// @Summary Resolve a share code from an OTP
// @Description Used by the receive page to auto-fill the share code; discloses nothing else
// @Tags shares
// @Produce json
// @Param otp query string true "OTP"
// @Success 200 {object} ResolveShareIDResponse
// @Failure 400
// @Failure 404
// @Failure 410
// @Router /shares/id-by-otp [get]
func (c *ShareController) ResolveShareID(ctx *gin.Context) {
	otp := ctx.Query("otp")
	if otp == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "otp query parameter is required"})
		return
	}

	shareID, err := c.shareService.ResolveShareID(otp)
	if err != nil {
		respondWithShareError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ResolveShareIDResponse{ShareID: shareID})
}

// allowVerifyAttempt dampens OTP and password brute forcing per client.
// The limiter fails open: an unavailable cache must not block downloads.
func (c *ShareController) allowVerifyAttempt(ctx *gin.Context) bool {
	allowed, err := c.rateLimiter.Allow(
		ctx.ClientIP(),
		"share_verify",
		verifyAttemptsPerMinute,
		time.Minute,
	)
	if err != nil {
		return true
	}

	if !allowed {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
		return false
	}

	return true
}

func respondWithShareError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	var quotaErr *shares_quota.QuotaExceededError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &quotaErr):
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":          quotaErr.Error(),
			"remainingBytes": quotaErr.RemainingBytes,
		})
	case errors.Is(err, ErrShareNotFound), errors.Is(err, ErrInvalidOTP):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrShareExpired):
		ctx.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, ErrPasswordRequired), errors.Is(err, ErrInvalidPassword):
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error":            err.Error(),
			"passwordRequired": true,
		})
	case errors.Is(err, ErrStoreUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package shares_download

import (
	"errors"
	"net/http"

	"github.com/bisweshmaharana/blizz-share/internal/features/shares"

	"github.com/gin-gonic/gin"
)

type DownloadTrackingController struct {
	trackingService *DownloadTrackingService
}

func (c *DownloadTrackingController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/shares/:shareId/track-download", c.TrackDownload)
	router.GET("/shares/:shareId/stats", c.GetDownloadStats)
}

// TrackDownload
// @Summary Track a download
// @Description Counts the download once per client; repeated calls return the unchanged count
// @Tags shares
// @Produce json
// @Param shareId path string true "Share code"
// @Success 200 {object} TrackDownloadResponse
// @Failure 404
// @Failure 410
// @Router /shares/{shareId}/track-download [post]
func (c *DownloadTrackingController) TrackDownload(ctx *gin.Context) {
	fingerprint := Fingerprint(ctx.ClientIP(), ctx.Request.UserAgent())

	response, err := c.trackingService.TrackDownload(ctx.Param("shareId"), fingerprint)
	if err != nil {
		respondWithTrackingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetDownloadStats
// @Summary Get download statistics for a share
// @Tags shares
// @Produce json
// @Param shareId path string true "Share code"
// @Success 200 {object} DownloadStatsResponse
// @Failure 404
// @Failure 410
// @Router /shares/{shareId}/stats [get]
func (c *DownloadTrackingController) GetDownloadStats(ctx *gin.Context) {
	response, err := c.trackingService.GetDownloadStats(ctx.Param("shareId"))
	if err != nil {
		respondWithTrackingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func respondWithTrackingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, shares.ErrShareNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrShareExpired):
		ctx.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, shares.ErrStoreUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package shares_download

import "time"

type TrackDownloadResponse struct {
	DownloadCount int64 `json:"downloadCount"`
}

type AccessRecordResponse struct {
	AccessType AccessType `json:"accessType"`
	Timestamp  time.Time  `json:"timestamp"`
}

type DownloadStatsResponse struct {
	Downloads      int64                  `json:"downloads"`
	LastDownloadAt *time.Time             `json:"lastDownloadAt"`
	History        []AccessRecordResponse `json:"history"`
}

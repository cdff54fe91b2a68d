package shares_cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const sweepInterval = 1 * time.Minute

type ExpiredShareCleanupBackgroundService struct {
	cleanupService *ExpiredShareCleanupService
	logger         *slog.Logger

	runOnce sync.Once
	hasRun  atomic.Bool
}

func (s *ExpiredShareCleanupBackgroundService) Run(ctx context.Context) {
	wasAlreadyRun := s.hasRun.Load()

	s.runOnce.Do(func() {
		s.hasRun.Store(true)

		s.logger.Info("Starting expired share cleanup background service")

		if ctx.Err() != nil {
			return
		}

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.cleanupService.CleanupExpiredShares(ctx); err != nil {
					s.logger.Error("Failed to clean up expired shares", "error", err)
				}
			}
		}
	})

	if wasAlreadyRun {
		panic(fmt.Sprintf("%T.Run() called multiple times", s))
	}
}

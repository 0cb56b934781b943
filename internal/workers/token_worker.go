package workers

import (
	"context"
	"time"

	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/repositories"
)

// TokenWorker purges expired refresh tokens in the background.
type TokenWorker struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenWorker(refreshTokenRepo repositories.RefreshTokenRepository) *TokenWorker {
	return &TokenWorker{
		refreshTokenRepo: refreshTokenRepo,
		interval:         1 * time.Hour,
	}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.purgeExpiredTokens(ctx)
}

func (w *TokenWorker) purgeExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.refreshTokenRepo.DeleteExpired(ctx)
			if err != nil {
				logger.Error("failed to purge expired refresh tokens", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("purged expired refresh tokens", "count", deleted)
			}
		}
	}
}

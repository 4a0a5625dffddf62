// internal/app/system/workers/resetcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
)

// ResetCleanup is a background worker that removes expired password reset
// codes from user accounts.
type ResetCleanup struct {
	users    *userstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewResetCleanup creates a reset-code cleanup worker that runs every interval.
func NewResetCleanup(users *userstore.Store, logger *zap.Logger, interval time.Duration) *ResetCleanup {
	return &ResetCleanup{
		users:    users,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *ResetCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("reset code cleanup worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ResetCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("reset code cleanup worker stopped")
}

func (w *ResetCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *ResetCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.users.ClearExpiredResetCodes(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("failed to clear expired reset codes", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("cleared expired reset codes", zap.Int64("count", count))
	}
}

package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/usecase/session"
)

// ExpiryWatcher clears the session store once the held session's expiry
// passes, so consumers never observe a token the server would reject.
type ExpiryWatcher struct {
	store    *session.Store
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

// NewExpiryWatcher creates a watcher polling at the given interval.
func NewExpiryWatcher(store *session.Store, interval time.Duration, logger *zap.Logger) *ExpiryWatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpiryWatcher{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Start launches the watch loop.
func (w *ExpiryWatcher) Start() {
	go w.loop()
}

// Stop terminates the watch loop.
func (w *ExpiryWatcher) Stop() {
	close(w.stopCh)
}

func (w *ExpiryWatcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *ExpiryWatcher) check() {
	sess := w.store.GetSession()
	if sess == nil || !sess.IsExpired(time.Now()) {
		return
	}

	w.logger.Info("session expired, clearing store",
		zap.Time("expired_at", sess.ExpiresAt),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w.store.Clear(ctx)
}

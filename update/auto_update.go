package update

import (
	"context"
	"log/slog"
	"sync"

	"vbagx/internal"

	"go.uber.org/atomic"
)

// AutoUpdate checks the release feed once in the background so the menu can
// offer the update without blocking startup.
type AutoUpdate struct {
	feedURL   string
	channel   internal.ReleaseChannel
	assetName string
	logger    *slog.Logger

	running         atomic.Bool
	updateAvailable atomic.Bool
	prompted        atomic.Bool
	done            chan struct{}

	mu         sync.Mutex
	updateInfo *Info
}

func NewAutoUpdate(feedURL string, channel internal.ReleaseChannel, assetName string, logger *slog.Logger) *AutoUpdate {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoUpdate{
		feedURL:   feedURL,
		channel:   channel,
		assetName: assetName,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

func (a *AutoUpdate) Start(ctx context.Context) {
	a.running.Store(true)
	a.done = make(chan struct{})
	go a.run(ctx)
}

func (a *AutoUpdate) IsRunning() bool {
	return a.running.Load()
}

// Wait blocks until the background check has finished.
func (a *AutoUpdate) Wait() {
	<-a.done
}

func (a *AutoUpdate) UpdateAvailable() bool {
	return a.updateAvailable.Load()
}

// Claim reports true exactly once after an update was found, so only one
// prompt is raised for it.
func (a *AutoUpdate) Claim() bool {
	return a.updateAvailable.Load() && a.prompted.CompareAndSwap(false, true)
}

func (a *AutoUpdate) UpdateInfo() *Info {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.updateInfo
}

func (a *AutoUpdate) run(ctx context.Context) {
	defer func() {
		a.running.Store(false)
		close(a.done)
	}()

	a.logger.Debug("AutoUpdate: Checking for updates in background", "channel", a.channel)

	info, err := CheckForUpdate(ctx, a.feedURL, a.channel, a.assetName)
	if err != nil {
		a.logger.Debug("AutoUpdate: Failed to check for updates", "error", err)
		return
	}

	a.mu.Lock()
	a.updateInfo = info
	a.mu.Unlock()

	if info.UpdateAvailable {
		a.logger.Info("AutoUpdate: Update available", "current", info.CurrentVersion, "latest", info.LatestVersion)
		a.updateAvailable.Store(true)
	} else {
		a.logger.Debug("AutoUpdate: Already up to date", "version", info.CurrentVersion)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"vbagx/browser"
	"vbagx/display"
	"vbagx/emulator"
	"vbagx/gui"
	"vbagx/internal"
	"vbagx/internal/constants"
	"vbagx/internal/environment"
	"vbagx/library"
	"vbagx/locale"
	"vbagx/menu"
	"vbagx/progress"
	"vbagx/prompt"
	"vbagx/resources"
	"vbagx/saves"
	"vbagx/settings"
	"vbagx/storage"
	"vbagx/ui"
	"vbagx/update"

	"go.uber.org/atomic"
)

const logFilename = "vbagx.log"

// App is everything main wires together.
type App struct {
	config  *internal.Config
	logger  *slog.Logger
	logFile *os.File

	display  *display.Display
	input    *display.Input
	platform *display.Platform
	core     *emulator.Cartridge

	ctrl       *gui.Controller
	notifier   *progress.Notifier
	session    *menu.Session
	dispatcher *menu.Dispatcher
	library    *library.Store
	updater    *update.AutoUpdate

	cancel  context.CancelFunc
	updated atomic.Bool
}

func setup() (*App, error) {
	a := &App{}

	configPath := environment.ConfigPath(internal.ConfigFile)
	config, err := internal.LoadConfig(configPath)
	if err != nil {
		config = internal.DefaultConfig()
		if saveErr := internal.SaveConfig(configPath, config); saveErr != nil {
			err = fmt.Errorf("%w (defaults not saved: %v)", err, saveErr)
		}
	}
	a.config = config
	a.logger, a.logFile = newLogger(config)
	slog.SetDefault(a.logger)
	a.logger.Info("Starting VBA GX", "version", version.Get().String())
	if err != nil {
		a.logger.Info("Using default configuration", "path", configPath, "error", err)
	}
	a.logger.Debug("Configuration loaded", "config", config.ToLoggable())

	localeFiles, err := resources.GetLocaleMessageFiles()
	if err != nil {
		return nil, fmt.Errorf("loading locale files: %w", err)
	}
	if err := locale.InitFromBytes(localeFiles); err != nil {
		return nil, fmt.Errorf("initializing i18n: %w", err)
	}
	if !slices.Contains(resources.Languages(), config.Language) {
		a.logger.Warn("No catalog for language, falling back to English", "language", config.Language)
	}
	if err := locale.SetWithCode(config.Language); err != nil {
		a.logger.Error("Failed to set language", "error", err, "language", config.Language, "using", locale.Current())
	}

	roots, unknown := config.MountRoots()
	for _, key := range unknown {
		a.logger.Warn("Ignoring unknown mount", "key", key)
	}
	mounts := storage.NewMounts(roots, a.logger)

	if a.library, err = library.Open(config.LibraryPath, a.logger); err != nil {
		a.logger.Error("Play history unavailable", "path", config.LibraryPath, "error", err)
		a.library = nil
	}

	a.display, err = display.Open(display.Options{
		Title:      "VBA GX",
		Width:      config.WindowWidth,
		Height:     config.WindowHeight,
		Fullscreen: config.Fullscreen,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening display: %w", err)
	}
	a.input = display.NewInput(a.logger)
	a.platform = display.NewPlatform(a.input, capabilities(config, roots), a.logger)
	a.core = emulator.NewCartridge(a.logger)

	a.session = &menu.Session{
		Core:     a.core,
		Platform: a.platform,
		Store:    settings.NewStore(config.SettingsPath(), a.logger),
		Mounts:   mounts,
		Library:  a.library,
		Logger:   a.logger,
	}
	s := a.session
	updatePrompt := ui.NewUpdatePrompt(s)

	root := gui.NewWindow("root", gui.ScreenWidth, gui.ScreenHeight)
	root.SetBackground(gui.ColorBackground, false)
	a.ctrl = gui.NewController(root, a.display, a.input, gui.Options{
		Tick:        config.Tick,
		Haptics:     a.input,
		Rumble:      func() bool { return s.Prefs().Rumble },
		PendingExit: s.PendingExit,
		OnExit:      a.onExit,
		OnTick: func() {
			if a.input.Quit() {
				s.RequestExit(gui.ExitApp)
			}
			updatePrompt.Check()
		},
		Logger: a.logger,
	})
	s.GUI = a.ctrl

	a.notifier = progress.New(a.ctrl, progress.Options{Localize: locale.Get, Logger: a.logger})
	s.Progress = a.notifier
	s.Prompt = prompt.New(a.ctrl, a.notifier, prompt.Options{Tick: a.ctrl.Tick(), Logger: a.logger})
	s.Browser = browser.New(mounts, a.notifier, a.logger)
	s.Saves = saves.NewManager(a.core, mounts, a.notifier, a.logger)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if config.UpdateURL != "" && config.ReleaseChannel != internal.ReleaseChannelOff {
		a.updater = update.NewAutoUpdate(config.UpdateURL, config.ReleaseChannel, config.UpdateAsset, a.logger)
		a.updater.Start(ctx)
		s.Updater = a.updater
		s.OnUpdate = func(info *update.Info) error { return a.install(ctx, info) }
	}

	a.dispatcher = menu.NewDispatcher(a.logger)
	ui.Register(a.dispatcher)

	a.notifier.Start()
	a.ctrl.Start()
	return a, nil
}

// newLogger logs to a file in the data directory, and to stderr as well in
// development.
func newLogger(config *internal.Config) (*slog.Logger, *os.File) {
	level := slog.LevelError
	switch config.LogLevel {
	case internal.LogLevelDebug:
		level = slog.LevelDebug
	case internal.LogLevelInfo:
		level = slog.LevelInfo
	}
	if environment.IsDevelopment() {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	file, err := os.OpenFile(filepath.Join(config.DataDir, logFilename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		out = file
		if environment.IsDevelopment() {
			out = io.MultiWriter(file, os.Stderr)
		}
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), file
}

func capabilities(config *internal.Config, roots map[storage.Method]string) settings.Capabilities {
	has := func(m storage.Method) bool {
		_, ok := roots[m]
		return ok
	}
	return settings.Capabilities{
		USB:            has(storage.MethodUSB),
		DVDLoad:        has(storage.MethodDVD),
		SMB:            has(storage.MethodSMB),
		MemoryCardSave: has(storage.MethodMCSlotA) || has(storage.MethodMCSlotB),
		Widescreen:     config.Widescreen,
		Wii:            config.Wii,
		Network:        config.Network || has(storage.MethodSMB),
	}
}

// onExit runs on the render goroutine once the fade out is done.
func (a *App) onExit(kind gui.ExitKind) {
	switch kind {
	case gui.ExitShutdown:
		a.platform.Shutdown()
	case gui.ExitApp:
		a.platform.Exit(a.session.Prefs().ExitAction)
	}
}

func (a *App) install(ctx context.Context, info *update.Info) error {
	ctx, cancel := context.WithTimeout(ctx, constants.UpdaterTimeout)
	defer cancel()

	a.logger.Info("Installing update", "version", info.LatestVersion, "url", info.DownloadURL)
	err := update.PerformUpdate(ctx, info.DownloadURL, a.notifier, locale.Get("downloading_update", "Downloading update..."))
	a.notifier.CancelAction()
	if err != nil {
		return err
	}
	a.updated.Store(true)
	return nil
}

func (a *App) exitCode() int {
	if a.updated.Load() {
		return constants.ExitCodeUpdated
	}
	return a.platform.ExitCode()
}

func (a *App) cleanup() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.updater != nil && a.updater.IsRunning() {
		a.updater.Wait()
	}
	if a.notifier != nil {
		a.notifier.Stop()
	}
	if a.ctrl != nil {
		a.ctrl.Stop()
	}
	if a.library != nil {
		if err := a.library.Close(); err != nil {
			a.logger.Error("Failed to close play history", "error", err)
		}
	}
	if a.display != nil {
		a.display.Close()
	}
	if err := os.RemoveAll(".tmp"); err != nil {
		a.logger.Error("Failed to clean .tmp directory", "error", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}


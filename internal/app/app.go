// Package app wires the calculator core to a terminal front end and
// manages the application lifecycle. Everything with real semantics
// lives below in the core packages; app only translates key presses to
// session operations and renders the session's observable state.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/tally/internal/config"
	"github.com/dshills/tally/internal/event"
	"github.com/dshills/tally/internal/persist"
	"github.com/dshills/tally/internal/session"
)

// ErrQuit is returned by Run when the user exits normally.
var ErrQuit = errors.New("quit")

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file; empty uses defaults.
	ConfigPath string

	// DataFile overrides the configured persistence file.
	DataFile string

	// Debug enables verbose logging.
	Debug bool

	// Screen overrides the terminal screen, used by tests.
	Screen tcell.Screen
}

// pane identifies what keyboard input drives.
type pane int

const (
	paneInput pane = iota
	paneFormulas
)

// App is the terminal calculator application.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	screen  tcell.Screen
	session *session.Session
	gateway *persist.FileGateway
	writer  *persist.Writer
	watcher *persist.Watcher
	ownsLog bool
	quit    chan struct{}

	// UI state
	focus    pane
	selected int
}

// New creates the application and wires all components in dependency
// order: config, logger, persistence, session, watcher, screen.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.DataFile != "" {
		cfg.DataFile = opts.DataFile
	}
	if opts.Debug {
		cfg.Debug = true
	}

	logger, ownsLog, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &App{
		cfg:     cfg,
		logger:  logger,
		ownsLog: ownsLog,
		quit:    make(chan struct{}),
	}

	a.gateway = persist.NewFileGateway(cfg.DataFile)
	a.writer = persist.NewWriter(a.gateway, logger)
	a.session = session.New(session.Options{
		HistoryCapacity: cfg.HistoryCapacity,
		FormulaCapacity: cfg.FormulaCapacity,
		Loader:          a.gateway,
		Saver:           a.writer,
		Logger:          logger,
	})
	a.session.Start(context.Background())

	watcher, err := persist.NewWatcher(cfg.DataFile, a.onExternalChange,
		persist.WithSelfWriteFilter(a.gateway.LastWrite),
		persist.WithWatcherLogger(logger),
	)
	if err != nil {
		// The calculator works without live reload; log and carry on.
		logger.Warn("persistence watcher unavailable", zap.Error(err))
	} else {
		a.watcher = watcher
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("creating screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		a.closeResources()
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen

	// Redraw whenever the core reports a change. Mutations made by the
	// event loop redraw inline; the interrupt covers the watcher path.
	for _, topic := range []event.Topic{
		event.TopicExpression, event.TopicResult, event.TopicHistory, event.TopicFormulas,
	} {
		a.session.Notifier().Subscribe(topic, func(event.Topic) {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
	}

	a.logger.Info("tally started",
		zap.String("data_file", cfg.DataFile),
		zap.Int("history_capacity", cfg.HistoryCapacity),
		zap.Int("formula_capacity", cfg.FormulaCapacity))

	return a, nil
}

// Session exposes the core session, used by tests.
func (a *App) Session() *session.Session {
	return a.session
}

// onExternalChange reloads the stores after the persistence file was
// modified by another process.
func (a *App) onExternalChange() {
	a.logger.Info("persistence file changed externally, reloading")
	a.session.Reload(context.Background())
}

// Shutdown releases the screen and flushes pending persistence writes.
// It is safe to call more than once.
func (a *App) Shutdown() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}

	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	a.closeResources()
}

func (a *App) closeResources() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.writer != nil {
		a.writer.Close()
		a.writer = nil
	}
	if a.ownsLog {
		_ = a.logger.Sync()
	}
}

// newLogger builds the zap logger for cfg. Without a log file the
// logger is a nop: stderr belongs to the terminal UI.
func newLogger(cfg config.Config) (*zap.Logger, bool, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), false, nil
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.OutputPaths = []string{cfg.LogFile}
	zcfg.ErrorOutputPaths = []string{cfg.LogFile}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, false, err
	}
	return logger, true, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pkgdrop/internal/catalog"
	"github.com/five82/pkgdrop/internal/config"
	"github.com/five82/pkgdrop/internal/installer"
	"github.com/five82/pkgdrop/internal/logging"
	"github.com/five82/pkgdrop/internal/prefs"
	"github.com/five82/pkgdrop/internal/session"
	"github.com/five82/pkgdrop/internal/state"
	"github.com/five82/pkgdrop/internal/ui"
)

// Options configure the pkgdrop application.
type Options struct {
	ConfigPath  string
	CatalogPath string // overrides the config file's catalog
	Host        string // overrides the config file's host
	PrefsPath   string // empty uses default ~/.config/pkgdrop/prefs.toml
	Version     string
	// Console logs to stderr instead of the log file. Only the
	// non-interactive commands set it.
	Console bool
}

// Env holds everything built from config before a command runs.
type Env struct {
	Config  config.Config
	Catalog []catalog.Package
	Logger  *zap.Logger
	Session *session.Session
	Store   *state.Store
}

// Prepare loads config and catalog, builds the logger and wires the install
// session. Callers must Close the returned Env.
func Prepare(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if host := strings.TrimSpace(opts.Host); host != "" {
		cfg.Host = host
	}
	if path := strings.TrimSpace(opts.CatalogPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("expand catalog path: %w", err)
		}
		cfg.CatalogPath = expanded
	}

	logCfg := logging.Config{Level: cfg.LogLevel, File: cfg.LogFile}
	if opts.Console {
		logCfg.File = ""
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	pkgs := catalog.Default()
	if cfg.CatalogPath != "" {
		pkgs, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	client := installer.NewClient(installer.Options{
		Port:      cfg.Port,
		Timeout:   cfg.RequestTimeout,
		UserAgent: "pkgdrop/" + version,
		Logger:    logger,
	})

	store := &state.Store{}
	sess, err := session.New(session.Options{
		Store:     store,
		Sender:    client,
		ScanHost:  cfg.ScanHost,
		ScanDelay: cfg.ScanDelay,
		Logger:    logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init session: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("packages", len(pkgs)),
		zap.String("catalog", cfg.CatalogPath),
	)

	return &Env{
		Config:  cfg,
		Catalog: pkgs,
		Logger:  logger,
		Session: sess,
		Store:   store,
	}, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	if e == nil || e.Logger == nil {
		return
	}
	_ = e.Logger.Sync()
}

// Run boots the pkgdrop TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Console = false
	env, err := Prepare(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	env.Logger.Info("starting tui",
		zap.String("version", opts.Version),
		zap.String("theme", userPrefs.Theme),
	)

	err = ui.Run(ui.Options{
		Context:     ctx,
		Session:     env.Session,
		Catalog:     env.Catalog,
		InitialHost: env.Config.Host,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		Logger:      env.Logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Signal shutdown, not a failure.
		err = nil
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	env.Logger.Info("tui exited")
	return nil
}

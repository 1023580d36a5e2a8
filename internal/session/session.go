package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/pkgdrop/internal/catalog"
	"github.com/five82/pkgdrop/internal/installer"
	"github.com/five82/pkgdrop/internal/state"
)

// User-facing messages. They are fixed; details go to the log.
const (
	MsgHostRequired  = "Please enter the device IP address."
	MsgInstallFailed = "Installation failed. Make sure the Remote PKG Installer is running on the device."
	MsgScanning      = "Scanning for device..."
	MsgScanFailed    = "Failed to detect device."
)

const (
	defaultScanHost  = "192.168.1.50"
	defaultScanDelay = 1500 * time.Millisecond
)

// Options configure a Session.
type Options struct {
	Store     *state.Store
	Sender    installer.Sender
	ScanHost  string
	ScanDelay time.Duration // zero reports immediately
	Logger    *zap.Logger
}

// Session runs install and scan actions against a shared state.Store.
// Methods are safe to call from several goroutines at once.
type Session struct {
	store     *state.Store
	sender    installer.Sender
	scanHost  string
	scanDelay time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New builds a Session. A nil Store gets a fresh one.
func New(opts Options) (*Session, error) {
	if opts.Sender == nil {
		return nil, fmt.Errorf("session requires an installer")
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	scanHost := strings.TrimSpace(opts.ScanHost)
	if scanHost == "" {
		scanHost = defaultScanHost
	}
	scanDelay := opts.ScanDelay
	if scanDelay < 0 {
		scanDelay = defaultScanDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:     store,
		sender:    opts.Sender,
		scanHost:  scanHost,
		scanDelay: scanDelay,
		logger:    logger.Named("session"),
		now:       time.Now,
	}, nil
}

// Store exposes the state the session writes to.
func (s *Session) Store() *state.Store {
	return s.store
}

// Install sends pkg to the device at host and reports the outcome through the
// store. A blank host fails without touching the network. The returned error
// is for non-interactive callers; the UI only reads the store.
func (s *Session) Install(ctx context.Context, host string, pkg catalog.Package) error {
	host = strings.TrimSpace(host)
	attempt := state.Attempt{
		ID:        uuid.New(),
		Host:      host,
		PackageID: pkg.ID,
		Title:     pkg.Title,
		Outcome:   state.OutcomePending,
		StartedAt: s.now(),
	}
	log := s.logger.With(
		zap.String("attempt", attempt.ID.String()),
		zap.String("host", host),
		zap.Int("package_id", pkg.ID),
		zap.String("title", pkg.Title),
	)

	if host == "" {
		attempt.Outcome = state.OutcomeRejected
		attempt.FinishedAt = attempt.StartedAt
		attempt.Err = installer.ErrHostRequired
		s.store.RecordAttempt(attempt)
		s.store.SetError(MsgHostRequired)
		log.Warn("install rejected", zap.Error(installer.ErrHostRequired))
		return installer.ErrHostRequired
	}

	s.store.SetHost(host)
	s.store.RecordAttempt(attempt)
	s.store.SetStatus(fmt.Sprintf("Installing %s...", pkg.Title))
	s.store.SetError("")
	log.Info("install requested", zap.String("pkg_url", pkg.PkgURL))

	err := s.sender.Install(ctx, host, pkg.PkgURL)
	attempt.FinishedAt = s.now()
	elapsed := zap.Duration("elapsed", attempt.FinishedAt.Sub(attempt.StartedAt))
	if err != nil {
		attempt.Outcome = state.OutcomeFailed
		attempt.Err = err
		s.store.RecordAttempt(attempt)
		s.store.SetError(MsgInstallFailed)
		log.Warn("install failed", zap.Error(err), elapsed)
		return fmt.Errorf("install %q: %w", pkg.Title, err)
	}

	attempt.Outcome = state.OutcomeStarted
	s.store.RecordAttempt(attempt)
	s.store.SetStatus(fmt.Sprintf("%s installation started successfully!", pkg.Title))
	log.Info("install started", elapsed)
	return nil
}

// Scan pretends to discover a device: it waits for the scan delay and then
// assigns the configured scan host. No packets are sent.
func (s *Session) Scan(ctx context.Context) (string, error) {
	s.store.SetScanning(true)
	defer s.store.SetScanning(false)
	s.store.SetStatus(MsgScanning)

	timer := time.NewTimer(s.scanDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.store.SetError(MsgScanFailed)
		s.logger.Warn("scan aborted", zap.Error(ctx.Err()))
		return "", fmt.Errorf("scan: %w", ctx.Err())
	case <-timer.C:
	}

	s.store.SetHost(s.scanHost)
	s.store.SetStatus(fmt.Sprintf("Device found at %s", s.scanHost))
	s.logger.Info("scan finished", zap.String("host", s.scanHost))
	return s.scanHost, nil
}

// IsValidation reports whether err came from input validation rather than
// from the device or the network.
func IsValidation(err error) bool {
	return errors.Is(err, installer.ErrHostRequired)
}

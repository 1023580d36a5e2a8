package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pkgdrop/internal/catalog"
	"github.com/five82/pkgdrop/internal/prefs"
	"github.com/five82/pkgdrop/internal/session"
	"github.com/five82/pkgdrop/internal/state"
)

// Focus identifies which widget receives keys.
type Focus int

const (
	FocusList Focus = iota
	FocusHost
	FocusSearch
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Session     *session.Session
	Catalog     []catalog.Package
	InitialHost string
	RefreshTick time.Duration
	ThemeName   string
	PrefsPath   string
	Logger      *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	session     *session.Session
	store       *state.Store
	packages    []catalog.Package
	prefsPath   string
	refreshTick time.Duration
	logger      *zap.Logger
	keys        keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    Focus
	showHelp bool

	hostInput   textinput.Model
	searchInput textinput.Model

	// Data state
	snapshot    state.Snapshot
	selectedRow int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refreshTick := opts.RefreshTick
	if refreshTick <= 0 {
		refreshTick = DefaultRefreshInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	packages := opts.Catalog
	if packages == nil {
		packages = catalog.Default()
	}

	var store *state.Store
	if opts.Session != nil {
		store = opts.Session.Store()
	} else {
		store = &state.Store{}
	}

	host := strings.TrimSpace(opts.InitialHost)
	if host != "" {
		store.SetHost(host)
	}

	hostInput := textinput.New()
	hostInput.Placeholder = "Enter device IP address"
	hostInput.Prompt = ""
	hostInput.CharLimit = 64
	hostInput.SetValue(host)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search title or content ID"
	searchInput.Prompt = ""
	searchInput.CharLimit = 80

	return Model{
		ctx:         ctx,
		session:     opts.Session,
		store:       store,
		packages:    packages,
		prefsPath:   prefsPath,
		refreshTick: refreshTick,
		logger:      logger.Named("ui"),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		focus:       FocusList,
		hostInput:   hostInput,
		searchInput: searchInput,
		snapshot:    store.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.refreshTick),
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeInputs()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.refreshTick))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case installDoneMsg:
		m.snapshot = m.store.Snapshot()
		return m, nil

	case scanDoneMsg:
		if msg.err == nil && msg.host != "" {
			m.hostInput.SetValue(msg.host)
			m.hostInput.CursorEnd()
		}
		m.snapshot = m.store.Snapshot()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.renderCommandBar(),
		m.renderInputs(),
		m.renderPackages(m.paneHeight()),
		m.renderMessages(),
		m.renderActivity(),
	}
	return strings.Join(sections, "\n")
}

// paneHeight returns the rows left for the package panes.
func (m Model) paneHeight() int {
	used := 2 + inputBoxHeight + 2 + m.activityHeight()
	return max(m.height-used, minPaneHeight)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type installDoneMsg struct {
	packageID int
	err       error
}

type scanDoneMsg struct {
	host string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func installCmd(ctx context.Context, sess *session.Session, host string, pkg catalog.Package) tea.Cmd {
	return func() tea.Msg {
		err := sess.Install(ctx, host, pkg)
		return installDoneMsg{packageID: pkg.ID, err: err}
	}
}

func scanCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		host, err := sess.Scan(ctx)
		return scanDoneMsg{host: host, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}

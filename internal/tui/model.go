package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timebox/internal/config"
	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/task"
	"github.com/javiermolinar/timebox/internal/tui/commands"
	"github.com/javiermolinar/timebox/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm        // New task form is open
	ModeConfirm     // Waiting for y/n on a delete
)

// Pane identifies which side of the screen has focus.
type Pane int

const (
	PaneTasks Pane = iota
	PaneGrid
)

// pendingDelete is what a confirmation modal will delete.
type pendingDelete struct {
	task  *task.Task
	block *task.Block
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx       context.Context
	planner   *planner.Planner
	config    *config.Config
	log       *zap.Logger
	clipboard func(string) error

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	date       time.Time // day shown in the grid
	pane       Pane
	mode       Mode
	taskCursor int
	slotCursor int
	scroll     int // first visible grid row

	// Form state
	formTitle    textinput.Model
	formQuadrant int // index into task.Quadrants()
	formDuration int // index into config durations
	formFocus    int
	formError    string

	// Confirm state
	confirm pendingDelete

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusErr  bool      // statusMsg is an error
	statusTime time.Time // When to clear message
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.clipboard = write
	}
}

// WithContext sets the context used for persistence calls.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New creates a new TUI model.
func New(p *planner.Planner, cfg *config.Config, log *zap.Logger, opts ...ModelOption) Model {
	if log == nil {
		log = zap.NewNop()
	}

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		log.Warn("loading theme failed, using mocha", zap.String("theme", cfg.UI.Theme), zap.Error(err))
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	formTitle := textinput.New()
	formTitle.Placeholder = "What needs doing?"
	formTitle.CharLimit = 256
	formTitle.Width = 48
	formTitle.PlaceholderStyle = styles.ModalPlaceholderStyle
	formTitle.TextStyle = styles.ModalInputTextStyle
	formTitle.PromptStyle = styles.ModalInputTextStyle

	today := dateutil.TruncateToDay(p.Now())
	m := Model{
		ctx:       context.Background(),
		planner:   p,
		config:    cfg,
		log:       log,
		clipboard: clipboard.WriteAll,
		theme:     t,
		styles:    styles,
		date:      today,
		pane:      PaneTasks,
		mode:      ModeNormal,
		formTitle: formTitle,
	}
	m.slotCursor = p.Day(today).Focus

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.Tick(m.planner.Now())
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, p *planner.Planner, cfg *config.Config, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	model := New(p, cfg, log, WithContext(ctx))
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}

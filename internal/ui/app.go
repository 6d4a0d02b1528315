package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lunchtray/internal/logtail"
	"github.com/five82/lunchtray/internal/menu"
	"github.com/five82/lunchtray/internal/prefs"
	"github.com/five82/lunchtray/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewToday View = iota
	ViewCalendar
	ViewLogs
)

var viewOrder = []View{ViewToday, ViewCalendar, ViewLogs}

func (v View) String() string {
	switch v {
	case ViewCalendar:
		return "calendar"
	case ViewLogs:
		return "logs"
	default:
		return "today"
	}
}

func parseView(s string) View {
	for _, v := range viewOrder {
		if v.String() == strings.ToLower(strings.TrimSpace(s)) {
			return v
		}
	}
	return ViewToday
}

const (
	defaultUITick       = time.Second
	defaultCalendarDays = 30
	logTailLines        = 400
)

// Refresher triggers an out-of-band menu fetch.
type Refresher interface {
	ForceRefresh()
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Poller       Refresher
	Cutoff       *menu.Clock // nil uses menu.DefaultCutoff
	CalendarDays int
	LogPath      string
	ThemeName    string
	StartView    string
	PrefsPath    string
	PollTick     time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	store        *state.Store
	poller       Refresher
	cutoff       menu.Clock
	calendarDays int
	logPath      string
	prefsPath    string
	pollTick     time.Duration
	now          func() time.Time

	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	snapshot    state.Snapshot
	lastUpdated time.Time

	content viewport.Model

	logs   []logtail.Entry
	logErr error

	showHelp bool
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultUITick
	}

	days := opts.CalendarDays
	if days <= 0 {
		days = defaultCalendarDays
	}

	cutoff := menu.DefaultCutoff
	if opts.Cutoff != nil {
		cutoff = *opts.Cutoff
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:          ctx,
		store:        opts.Store,
		poller:       opts.Poller,
		cutoff:       cutoff,
		calendarDays: days,
		logPath:      opts.LogPath,
		prefsPath:    prefsPath,
		pollTick:     pollTick,
		now:          time.Now,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.ThemeName),
		currentView:  parseView(opts.StartView),
		content:      viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, loadLogsCmd(m.logPath))
	}
	return tea.Batch(cmds...)
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
		m.resizeContent()
		m.refreshContent()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = m.now()
		if m.snapshot.Phase == state.PhaseFetching || m.snapshot.LastOutcome != state.OutcomeNone {
			m.notice = ""
		}
		if m.currentView != ViewLogs {
			m.refreshContent()
		}
		return m, nil

	case logsMsg:
		m.logs = msg.entries
		m.logErr = msg.err
		if m.currentView == ViewLogs {
			atBottom := m.content.AtBottom() || m.content.TotalLineCount() == 0
			m.refreshContent()
			if atBottom {
				m.content.GotoBottom()
			}
		}
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

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBox(m.viewTitle(), m.content.View()))
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.poller != nil {
			m.poller.ForceRefresh()
			m.notice = "refresh requested"
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.offsetView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.offsetView(-1))

	case key.Matches(msg, m.keys.ViewToday):
		return m.switchView(ViewToday)

	case key.Matches(msg, m.keys.ViewCalendar):
		return m.switchView(ViewCalendar)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)

	case key.Matches(msg, m.keys.Up):
		m.content.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.content.LineDown(1)
	case key.Matches(msg, m.keys.Top):
		m.content.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.content.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.content.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.content.ViewDown()
	}
	return m, nil
}

func (m Model) offsetView(delta int) View {
	n := len(viewOrder)
	return viewOrder[((int(m.currentView)+delta)%n+n)%n]
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if v == m.currentView {
		return m, nil
	}
	m.currentView = v
	m.savePrefs()
	m.refreshContent()
	m.content.GotoTop()
	if v == ViewLogs {
		m.content.GotoBottom()
		return m, loadLogsCmd(m.logPath)
	}
	return m, nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, View: m.currentView.String()})
}

// handleTick polls the store and, in the logs view, the log file.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, loadLogsCmd(m.logPath))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m *Model) resizeContent() {
	// header + command bar + box borders
	m.content.Width = max(m.width-4, 0)
	m.content.Height = max(m.height-4, 0)
}

// refreshContent re-renders the active view into the viewport, keeping the
// scroll position where possible.
func (m *Model) refreshContent() {
	m.content.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	var body string
	switch m.currentView {
	case ViewCalendar:
		body = m.renderCalendar()
	case ViewLogs:
		body = m.renderLogs()
	default:
		body = m.renderToday()
	}
	offset := m.content.YOffset
	m.content.SetContent(body)
	m.content.SetYOffset(offset)
}

func (m Model) viewTitle() string {
	switch m.currentView {
	case ViewCalendar:
		return "Calendar"
	case ViewLogs:
		return "Logs"
	default:
		return "Menu for " + m.targetDate().In(time.Local).Format("Mon Jan 2")
	}
}

func (m Model) targetDate() menu.Date {
	return menu.SelectTargetDate(m.now(), m.cutoff)
}

// renderBox draws a rounded border with the title set into the top edge.
func (m Model) renderBox(title, body string) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	inner := max(m.width-2, 0)

	label := " " + truncate(title, max(inner-4, 0)) + " "
	fill := max(inner-lipgloss.Width(label)-1, 0)
	top := edge.Render(border.TopLeft+border.Top) +
		m.theme.Styles().AccentText.Bold(true).Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	box := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(inner).
		Height(m.content.Height).
		Padding(0, 1)
	return top + "\n" + box.Render(body)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logsMsg struct {
	entries []logtail.Entry
	err     error
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

func loadLogsCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logTailLines)
		return logsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}

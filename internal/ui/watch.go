package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
)

// SourceLister is polled by the watch view. *discovery.Finder satisfies it.
type SourceLister interface {
	CurrentSources() ([]discovery.Source, error)
}

type sourcesMsg struct {
	sources []discovery.Source
	err     error

	// manual is set for polls triggered by the refresh key. They do not
	// schedule a tick, so only one tick chain is ever running.
	manual bool
}

type pollTickMsg time.Time

type watchKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Quit}}
}

var defaultWatchKeys = watchKeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// WatchModel is a Bubble Tea model that polls a SourceLister and renders
// the live source table until the user quits or polling fails.
type WatchModel struct {
	lister   SourceLister
	interval time.Duration
	names    NameFunc

	spinner spinner.Model
	help    help.Model
	keys    watchKeyMap

	sources []discovery.Source
	polls   int
	err     error
	width   int
}

// NewWatchModel creates a watch view polling lister every interval.
func NewWatchModel(lister SourceLister, interval time.Duration, names NameFunc) WatchModel {
	if interval <= 0 {
		interval = time.Second
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = TitleStyle

	return WatchModel{
		lister:   lister,
		interval: interval,
		names:    names,
		spinner:  s,
		help:     help.New(),
		keys:     defaultWatchKeys,
		width:    GetTerminalWidth(),
	}
}

// Sources returns the last snapshot received.
func (m WatchModel) Sources() []discovery.Source {
	return m.sources
}

// Err returns the polling error that stopped the view, if any.
func (m WatchModel) Err() error {
	return m.err
}

func (m WatchModel) poll() tea.Cmd {
	return m.pollWith(false)
}

func (m WatchModel) refresh() tea.Cmd {
	return m.pollWith(true)
}

func (m WatchModel) pollWith(manual bool) tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		sources, err := lister.CurrentSources()
		return sourcesMsg{sources: sources, err: err, manual: manual}
	}
}

func (m WatchModel) scheduleNext() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// Init implements tea.Model
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.poll())
}

// Update implements tea.Model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = clampWidth(msg.Width)
		m.help.Width = msg.Width

	case sourcesMsg:
		m.polls++
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.sources = msg.sources
		if msg.manual {
			return m, nil
		}
		return m, m.scheduleNext()

	case pollTickMsg:
		return m, m.poll()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(TitleStyle.Render(" Watching for sources"))
	b.WriteString(MutedStyle.Render(fmt.Sprintf("  %d found, refresh every %s", len(m.sources), m.interval)))
	b.WriteString("\n\n")

	if m.polls == 0 {
		b.WriteString(MutedStyle.Render("Searching..."))
	} else {
		b.WriteString(RenderSources(m.sources, m.names, m.width))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorMessageStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// RunWatch runs the watch view until the user quits. It returns the polling
// error that ended the view, if any.
func RunWatch(lister SourceLister, interval time.Duration, names NameFunc, opts ...tea.ProgramOption) error {
	final, err := tea.NewProgram(NewWatchModel(lister, interval, names), opts...).Run()
	if err != nil {
		return fmt.Errorf("failed to run watch view: %w", err)
	}
	if m, ok := final.(WatchModel); ok {
		return m.Err()
	}
	return nil
}

package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"savekeeper/internal/app"
	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/presentation"
)

// View selects which root the list shows.
type View int

const (
	ViewLive View = iota
	ViewArchive
)

func (v View) String() string {
	if v == ViewArchive {
		return "Archived saves"
	}
	return "Live saves"
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Messages for the TUI
type (
	CatalogMsg struct {
		View    View
		Entries []domain.SaveEntry
		Err     error
	}
	PreviewMsg struct {
		Name    string
		Preview domain.Preview
		Err     error
	}
	OperationDoneMsg struct {
		Label   string
		Outcome domain.Outcome
	}
)

type Config struct {
	LiveDir    string
	ArchiveDir string
	Catalog    *app.Catalog
	Runner     *app.Runner
	Thumbnails app.Thumbnails
}

type Model struct {
	config     Config
	Showing    View
	Entries    []domain.SaveEntry
	Cursor     int
	Status     string
	statusKind statusKind
	preview    string
	Running    int
	spinner    spinner.Model
	keys       keyMap
	help       help.Model
	Quitting   bool
	width      int
	height     int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		config:  cfg,
		Showing: ViewLive,
		spinner: s,
		keys:    newKeyMap(),
		help:    help.New(),
		width:   100,
		height:  30,
	}
	m.keys.setView(m.Showing)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadCatalog(m.Showing)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CatalogMsg:
		if msg.View != m.Showing {
			return m, nil
		}
		if msg.Err != nil {
			m.setStatus(statusError, appErrors.UserMessage(msg.Err))
			return m, nil
		}
		m.Entries = msg.Entries
		if m.Cursor >= len(m.Entries) {
			m.Cursor = max(len(m.Entries)-1, 0)
		}
		return m, nil

	case PreviewMsg:
		entry, ok := m.selected()
		if !ok || entry.Name != msg.Name {
			return m, nil
		}
		if msg.Err != nil {
			m.preview = ""
			m.setStatus(statusWarning, appErrors.UserMessage(msg.Err))
			return m, nil
		}
		m.preview = renderImage(msg.Preview.Image, 32)
		return m, nil

	case OperationDoneMsg:
		m.Running--
		kind := statusSuccess
		switch msg.Outcome.Status {
		case domain.CompletedWithSkips:
			kind = statusWarning
		case domain.Failed:
			kind = statusError
		}
		m.setStatus(kind, formatOutcome(msg.Label, msg.Outcome))
		return m, m.loadCatalog(m.Showing)

	case spinner.TickMsg:
		if m.Running > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
			m.clearSelection()
		}
	case key.Matches(msg, m.keys.Down):
		if m.Cursor < len(m.Entries)-1 {
			m.Cursor++
			m.clearSelection()
		}
	case key.Matches(msg, m.keys.Switch):
		if m.Showing == ViewLive {
			m.Showing = ViewArchive
		} else {
			m.Showing = ViewLive
		}
		m.keys.setView(m.Showing)
		m.Entries = nil
		m.Cursor = 0
		m.clearSelection()
		return m, m.loadCatalog(m.Showing)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCatalog(m.Showing)
	case key.Matches(msg, m.keys.Preview):
		if entry, ok := m.selected(); ok {
			m.clearSelection()
			return m, m.loadPreview(entry)
		}
	case key.Matches(msg, m.keys.ArchiveOne):
		if entry, ok := m.selected(); ok {
			return m.start("Archive "+entry.Name, domain.CopyRequest{
				Subfolder:  entry.Name,
				SourceRoot: m.config.LiveDir,
				DestRoot:   m.config.ArchiveDir,
			})
		}
	case key.Matches(msg, m.keys.ArchiveAll):
		return m.start("Archive all", domain.CopyRequest{SourceRoot: m.config.LiveDir, DestRoot: m.config.ArchiveDir})
	case key.Matches(msg, m.keys.RestoreOne):
		if entry, ok := m.selected(); ok {
			return m.start("Restore "+entry.Name, domain.CopyRequest{
				Subfolder:  entry.Name,
				SourceRoot: m.config.ArchiveDir,
				DestRoot:   m.config.LiveDir,
			})
		}
	case key.Matches(msg, m.keys.RestoreAll):
		return m.start("Restore all", domain.CopyRequest{SourceRoot: m.config.ArchiveDir, DestRoot: m.config.LiveDir})
	case key.Matches(msg, m.keys.Delete):
		if entry, ok := m.selected(); ok {
			return m.start("Delete "+entry.Name, domain.DeleteRequest{
				TargetPath: filepath.Join(m.config.ArchiveDir, entry.Name),
			})
		}
	}
	return m, nil
}

func (m Model) start(label string, op domain.Operation) (tea.Model, tea.Cmd) {
	m.Running++
	m.setStatus(statusInfo, label+"...")
	return m, tea.Batch(m.runOperation(label, op), m.spinner.Tick)
}

func (m Model) selected() (domain.SaveEntry, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Entries) {
		return domain.SaveEntry{}, false
	}
	return m.Entries[m.Cursor], true
}

func (m *Model) clearSelection() {
	m.preview = ""
	m.Status = ""
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.Status = text
}

func (m Model) root(view View) string {
	if view == ViewArchive {
		return m.config.ArchiveDir
	}
	return m.config.LiveDir
}

func (m Model) loadCatalog(view View) tea.Cmd {
	catalog := m.config.Catalog
	root := m.root(view)
	return func() tea.Msg {
		if catalog == nil {
			return CatalogMsg{View: view}
		}
		entries, err := catalog.Scan(context.Background(), root)
		return CatalogMsg{View: view, Entries: entries, Err: err}
	}
}

func (m Model) loadPreview(entry domain.SaveEntry) tea.Cmd {
	thumbs := m.config.Thumbnails
	return func() tea.Msg {
		preview, err := thumbs.Load(context.Background(), entry)
		return PreviewMsg{Name: entry.Name, Preview: preview, Err: err}
	}
}

// runOperation hands op to the runner and turns its single completion callback
// into a message for the update loop.
func (m Model) runOperation(label string, op domain.Operation) tea.Cmd {
	runner := m.config.Runner
	return func() tea.Msg {
		if runner == nil {
			return OperationDoneMsg{Label: label, Outcome: domain.FailedOutcome(op.Kind(), op.Target(), fmt.Errorf("no runner configured"))}
		}
		done := make(chan domain.Outcome, 1)
		runner.Run(op, func(outcome domain.Outcome) { done <- outcome })
		return OperationDoneMsg{Label: label, Outcome: <-done}
	}
}

func formatOutcome(label string, outcome domain.Outcome) string {
	line := fmt.Sprintf("%s: %s", label, presentation.StatusLine(outcome))
	if len(outcome.Skipped) == 0 {
		return line
	}
	paths := outcome.SkippedPaths()
	if len(paths) > 3 {
		paths = append(paths[:3:3], fmt.Sprintf("... %d more", len(paths)-3))
	}
	return line + "\n" + presentation.JoinLines(paths)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(m.Showing.String()))
	b.WriteString("\n\n")

	list := m.renderList()
	if m.preview != "" {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, previewBoxStyle.Render(m.preview))
	}
	b.WriteString(list)
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Save Keeper"),
		subtitleStyle.Render("Back up and restore game saves"),
		"",
		dimStyle.Render(fmt.Sprintf("%s Live:    %s", iconFolder, shortenPath(m.config.LiveDir))),
		dimStyle.Render(fmt.Sprintf("%s Archive: %s", iconFolder, shortenPath(m.config.ArchiveDir))),
	)
}

func (m Model) renderList() string {
	if len(m.Entries) == 0 {
		return dimStyle.Render("  No saves found")
	}

	visible := max(m.height-16, 5)
	start := 0
	if m.Cursor >= visible {
		start = m.Cursor - visible + 1
	}
	end := min(start+visible, len(m.Entries))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		entry := m.Entries[i]
		date := dateStyle.Render(entry.ModifiedAt.Format("2006-01-02 15:04"))
		if i == m.Cursor {
			lines = append(lines, fmt.Sprintf("%s %s  %s", cursorStyle.Render(iconCursor), cursorStyle.Render(entry.Name), date))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", entryStyle.Render(entry.Name), date))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	prefix := ""
	if m.Running > 0 {
		prefix = m.spinner.View() + " "
	}
	if m.Status == "" {
		return prefix
	}
	switch m.statusKind {
	case statusSuccess:
		return prefix + successStyle.Render(iconSuccess+" "+m.Status)
	case statusWarning:
		return prefix + warningStyle.Render(iconWarning+" "+m.Status)
	case statusError:
		return prefix + errorStyle.Render(iconError+" "+m.Status)
	default:
		return prefix + entryStyle.Render(m.Status)
	}
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

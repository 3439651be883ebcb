// Package ui is the terminal host. It runs the same scenes and pause menu
// as the 3D client without a window, for builds without cgo and for
// --classic.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/walkabout/internal/console"
	"github.com/appengine-ltd/walkabout/internal/menu"
	"github.com/appengine-ltd/walkabout/internal/nav"
	"github.com/appengine-ltd/walkabout/internal/session"
)

const tickInterval = 50 * time.Millisecond

type App struct {
	s *session.Session
}

func NewApp(s *session.Session) *App {
	return &App{s: s}
}

func (a *App) Run(ctx context.Context) error {
	m, err := newModel(a.s)
	if err != nil {
		return err
	}
	defer m.menu.Disable()

	if _, err := a.s.Start(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// --- Styles ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warn        = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const rule = "----------------------------------------"

type binding struct {
	key key.Binding
	cmd menu.Command
}

// menuKeys maps terminal keys to menu commands.
var menuKeys = []binding{
	{key.NewBinding(key.WithKeys("esc", "p"), key.WithHelp("esc", "pause")), menu.CmdTogglePause},
	{key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")), menu.CmdUp},
	{key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")), menu.CmdDown},
	{key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")), menu.CmdLeft},
	{key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")), menu.CmdRight},
	{key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")), menu.CmdActivate},
	{key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "close")), menu.CmdClose},
	{key.NewBinding(key.WithKeys("["), key.WithHelp("[", "back")), menu.CmdBack},
	{key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")), menu.CmdForward},
	{key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")), menu.CmdQuit},
}

var commandLineKey = key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command"))

func menuCommand(msg tea.KeyMsg) (menu.Command, bool) {
	for _, b := range menuKeys {
		if key.Matches(msg, b.key) {
			return b.cmd, true
		}
	}
	return menu.CmdNone, false
}

type tickMsg time.Time

type model struct {
	s       *session.Session
	menu    *menu.InGame
	console *console.Console
	status  string

	// typing is true while the command line has focus.
	typing bool
	input  textinput.Model
}

func newModel(s *session.Session) (model, error) {
	m, err := s.NewMenu(nil)
	if err != nil {
		return model{}, err
	}
	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "help"
	ti.CharLimit = 80
	ti.Width = 40
	return model{
		s:       s,
		menu:    m,
		console: console.New(m, s.Manager, s.Prefs, s.Log),
		input:   ti,
	}, nil
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateLine(msg)
		}
		if key.Matches(msg, commandLineKey) {
			m.typing, m.status = true, ""
			m.input.Reset()
			return m, m.input.Focus()
		}
		cmd, ok := menuCommand(msg)
		if !ok {
			return m, nil
		}
		m.status = ""
		if err := m.menu.Do(cmd); err != nil && !errors.Is(err, nav.ErrInvalidState) {
			m.status = err.Error()
			m.s.Log.Warn("menu command failed", "command", cmd.String(), "error", err)
		}
		if m.s.Manager.QuitRequested() {
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.s.Manager.Update()
		if m.s.Manager.QuitRequested() {
			return m, tea.Quit
		}
		return m, tick()
	}
	if m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateLine feeds the command line and runs it on enter.
func (m model) updateLine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeLine()
		return m, nil
	case tea.KeyCtrlC:
		m.s.Manager.Quit()
		return m, tea.Quit
	case tea.KeyEnter:
		line := m.input.Value()
		m.closeLine()
		out, err := m.console.Execute(context.Background(), line)
		switch {
		case err != nil && nav.IsExhausted(err):
			m.status = ""
		case err != nil:
			m.status = err.Error()
		default:
			m.status = out
		}
		if m.s.Manager.QuitRequested() {
			return m, tea.Quit
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) closeLine() {
	m.typing = false
	m.input.Blur()
	m.input.Reset()
}

func (m model) View() string {
	loc := m.s.Localizer
	var b strings.Builder

	b.WriteString(brightGreen.Render("WALKABOUT"))
	if l := m.s.Levels.Layout(); l != nil {
		b.WriteString(dimGreen.Render("  " + l.Name))
		b.WriteString("\n" + dimGreen.Render(l.Description))
	}
	b.WriteString("\n" + border.Render(rule) + "\n\n")

	if load := m.s.Manager.Pending(); load != nil {
		pct := int(load.Progress()*100 + 0.5)
		b.WriteString(green.Render(loc.Tf("LoadingScene", map[string]any{"Scene": load.Scene(), "Percent": pct})) + "\n\n")
	}

	if p := m.menu.Current(); p != nil {
		m.viewPanel(&b, p)
	} else {
		b.WriteString(green.Render(loc.T("HintWalk")) + "\n")
	}

	b.WriteString("\n" + border.Render(rule) + "\n")
	if m.typing {
		b.WriteString(m.input.View() + "\n")
	} else if m.status != "" {
		b.WriteString(warn.Render(m.status) + "\n")
	}
	if !m.typing && m.menu.Current() == nil {
		b.WriteString(dimGreen.Render(loc.T("HintConsole")) + "\n")
	}
	return b.String()
}

func (m model) viewPanel(b *strings.Builder, p *menu.Panel) {
	loc := m.s.Localizer
	title := loc.T(p.Title())
	if depth, cursor := m.menu.History(); depth > 1 {
		title += dimGreen.Render(fmt.Sprintf("  %d/%d", cursor+1, depth))
	}
	b.WriteString(brightGreen.Render(title) + "\n\n")

	for i, item := range p.Items() {
		line := loc.T(item.Label)
		value := m.menu.DisplayValue(item)
		if item.Kind == menu.ItemInfo {
			value = loc.T(item.Detail)
		}
		if value != "" {
			line = fmt.Sprintf("%-24s %s", line, value)
		}

		switch {
		case i == p.Cursor():
			b.WriteString("> " + brightGreen.Render(line) + "\n")
		case item.Kind == menu.ItemInfo:
			b.WriteString("  " + dimGreen.Render(line) + "\n")
		default:
			b.WriteString("  " + green.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + dimGreen.Render(loc.T("HintMenu")) + "\n")
	b.WriteString(dimGreen.Render(loc.T("HintHistory")) + "\n")
}

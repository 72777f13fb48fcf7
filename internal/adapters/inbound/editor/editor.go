package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/commitcraft/commitcraft/internal/domain"
)

var (
	accent = lipgloss.Color("#D97706")
	dim    = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#EF4444")
	green  = lipgloss.Color("#22C55E")

	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(dim)
	violationStyle = lipgloss.NewStyle().Foreground(danger)
	validStyle     = lipgloss.NewStyle().Foreground(green)
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Save key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit without saving")),
	}
}

// sectionTab is one editable body section.
type sectionTab struct {
	name    string
	heading string
	body    textarea.Model
}

// Model is the interactive draft editor: the subject field plus one tab per
// section, re-validating the rendered draft on every edit.
type Model struct {
	cfg        domain.Config
	subject    textinput.Model
	tabs       []sectionTab
	active     int // 0 = subject, 1..len(tabs) = sections
	violations []domain.Violation
	keys       keyMap
	saved      bool
	width      int
}

// New builds an editor over msg. The section order of the draft is kept.
func New(msg domain.CommitMessage, cfg domain.Config) Model {
	subject := textinput.New()
	subject.Prompt = "subject> "
	subject.SetValue(msg.Subject)
	subject.Focus()

	var tabs []sectionTab
	for _, s := range msg.Sections {
		body := textarea.New()
		body.SetValue(s.Body)
		body.SetWidth(72)
		body.SetHeight(8)
		name := s.Name
		if name == "" {
			name = "Overview"
		}
		tabs = append(tabs, sectionTab{name: name, heading: s.Heading, body: body})
	}

	m := Model{
		cfg:     cfg,
		subject: subject,
		tabs:    tabs,
		keys:    defaultKeyMap(),
	}
	m.violations = domain.Validate(m.Message(), cfg)
	return m
}

// Message rebuilds the commit message from the current widget contents.
func (m Model) Message() domain.CommitMessage {
	msg := domain.CommitMessage{Subject: m.subject.Value()}
	for _, t := range m.tabs {
		name := t.name
		if t.heading == "" {
			name = ""
		}
		msg.Sections = append(msg.Sections, domain.Section{
			Name:    name,
			Heading: t.heading,
			Body:    strings.TrimRight(t.body.Value(), " \t\n"),
		})
	}
	return msg
}

// Saved reports whether the user saved before leaving.
func (m Model) Saved() bool { return m.saved }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.tabs {
			m.tabs[i].body.SetWidth(min(msg.Width-4, 72))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.saved = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.focus(m.active + 1), nil
		case key.Matches(msg, m.keys.Prev):
			return m.focus(m.active - 1), nil
		}
	}

	var cmd tea.Cmd
	if m.active == 0 {
		m.subject, cmd = m.subject.Update(msg)
	} else {
		m.tabs[m.active-1].body, cmd = m.tabs[m.active-1].body.Update(msg)
	}

	m.violations = domain.Validate(m.Message(), m.cfg)
	return m, cmd
}

// focus moves the active field, wrapping around.
func (m Model) focus(target int) Model {
	fields := len(m.tabs) + 1
	target = ((target % fields) + fields) % fields

	m.subject.Blur()
	for i := range m.tabs {
		m.tabs[i].body.Blur()
	}

	m.active = target
	if target == 0 {
		m.subject.Focus()
	} else {
		m.tabs[target-1].body.Focus()
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	// Tab bar
	names := append([]string{"Subject"}, tabNames(m.tabs)...)
	for i, name := range names {
		if i == m.active {
			b.WriteString(activeTabStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	b.WriteString("\n\n")

	if m.active == 0 {
		b.WriteString(m.subject.View())
	} else {
		t := m.tabs[m.active-1]
		if t.heading != "" {
			b.WriteString(tabStyle.Render(t.heading) + "\n")
		}
		b.WriteString(t.body.View())
	}
	b.WriteString("\n\n")

	// Live validation footer
	if len(m.violations) == 0 {
		b.WriteString(validStyle.Render("✓ message is valid") + "\n")
	} else {
		for _, v := range m.violations {
			b.WriteString(violationStyle.Render(fmt.Sprintf("✗ %s", v.Message)) + "\n")
		}
	}

	b.WriteString(footerStyle.Render("tab/shift+tab switch · ctrl+s save · esc quit"))
	return b.String()
}

func tabNames(tabs []sectionTab) []string {
	names := make([]string, len(tabs))
	for i, t := range tabs {
		names[i] = t.name
	}
	return names
}

// Run starts the editor and returns the final message plus whether the user
// saved.
func Run(msg domain.CommitMessage, cfg domain.Config) (domain.CommitMessage, bool, error) {
	final, err := tea.NewProgram(New(msg, cfg)).Run()
	if err != nil {
		return domain.CommitMessage{}, false, fmt.Errorf("running editor: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return domain.CommitMessage{}, false, fmt.Errorf("unexpected editor model %T", final)
	}
	return m.Message(), m.Saved(), nil
}

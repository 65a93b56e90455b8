package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scalpel-ui/scalpel/pkg/lint"
)

// keyMap defines the lint browser key bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous issue"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next issue"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f", "tab"),
		key.WithHelp("f", "cycle kind filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the interactive lint issue browser.
type Model struct {
	issues   []lint.Issue
	kinds    []lint.Kind
	filter   int // index into kinds, -1 means all
	cursor   int
	width    int
	height   int
	quitting bool
}

// NewModel creates a browser over the given findings.
func NewModel(issues []lint.Issue) Model {
	seen := make(map[lint.Kind]bool)
	var kinds []lint.Kind
	for _, i := range issues {
		if !seen[i.Kind] {
			seen[i.Kind] = true
			kinds = append(kinds, i.Kind)
		}
	}
	return Model{issues: issues, kinds: kinds, filter: -1}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Filter):
			m.filter++
			if m.filter >= len(m.kinds) {
				m.filter = -1
			}
			m.cursor = 0
		}
	}
	return m, nil
}

// visible returns the issues matching the active kind filter.
func (m Model) visible() []lint.Issue {
	if m.filter < 0 {
		return m.issues
	}
	want := m.kinds[m.filter]
	var out []lint.Issue
	for _, i := range m.issues {
		if i.Kind == want {
			out = append(out, i)
		}
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Scalpel Lint"))
	b.WriteString("\n")

	issues := m.visible()
	if m.filter >= 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("filter: %s (%d of %d)", m.kinds[m.filter], len(issues), len(m.issues))))
		b.WriteString("\n")
	}
	if len(issues) == 0 {
		b.WriteString(cleanStyle.Render("✓ no findings"))
		b.WriteString("\n")
		return b.String()
	}

	for i, issue := range issues {
		line := fmt.Sprintf("%s  %s", issue.Pos, issue.Kind)
		if issue.Component != "" {
			line += "  (" + issue.Component + ")"
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + posStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.cursor < len(issues) {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(detailView(issues[m.cursor])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate · f filter · q quit"))
	return b.String()
}

func detailView(issue lint.Issue) string {
	var b strings.Builder
	b.WriteString(kindStyle.Render(string(issue.Kind)))
	b.WriteString("\n\n")
	b.WriteString(issue.Form)
	if issue.Tag != "" {
		b.WriteString(fmt.Sprintf("\n\nelement: %s, attribute: %s", issue.Tag, issue.Attr))
	}
	if issue.EffectKind != "" {
		b.WriteString("\n\nscope: " + issue.EffectKind)
	}
	return b.String()
}

// RunBrowser starts the interactive issue browser.
func RunBrowser(issues []lint.Issue) error {
	p := tea.NewProgram(NewModel(issues), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BuildFunc creates the live view for a scenario name.
type BuildFunc func(name string) (Model, error)

// Picker lists scenarios and hands over to the live view once one is
// chosen.
type Picker struct {
	names  []string
	info   map[string]string
	cursor int
	build  BuildFunc
	live   *Model
	err    error
}

func NewPicker(names []string, info map[string]string, build BuildFunc) Picker {
	return Picker{names: names, info: info, build: build}
}

func (p Picker) Live() *Model { return p.live }
func (p Picker) Err() error   { return p.err }

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) == 0 {
			return p, nil
		}
		live, err := p.build(p.names[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.err = nil
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	t := Themes[0]
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	selected := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.Accent)
	key := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("GRAVSIM") + "\n    " + sub.Render("n-body gravity") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range p.names {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", key.Render("▸"), selected.Render(fmt.Sprintf("%-12s", name)), desc.Render(p.info[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-12s", name)), sub.Render(p.info[name])))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Error).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" select  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

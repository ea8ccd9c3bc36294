package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sketchify/sketchify/pkg/params"
)

// StylePickerModel is the bubbletea model behind "render --pick": a
// scrolling table of styles with the cursor starting on the current one.
type StylePickerModel struct {
	Styles   []params.StyleInfo
	Cursor   int
	Selected *params.StyleInfo
	Height   int // visible rows
	Offset   int // first visible row
}

func NewStylePickerModel(styles []params.StyleInfo, current params.Style) StylePickerModel {
	m := StylePickerModel{Styles: styles, Height: 15}
	for i, s := range styles {
		if s.ID == current {
			m.move(i)
			break
		}
	}
	return m
}

// move shifts the cursor by delta, clamped to the list, and scrolls so the
// cursor stays visible.
func (m *StylePickerModel) move(delta int) {
	if len(m.Styles) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Styles)-1)
	switch {
	case m.Cursor < m.Offset:
		m.Offset = m.Cursor
	case m.Cursor >= m.Offset+m.Height:
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m StylePickerModel) Init() tea.Cmd { return nil }

func (m StylePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "enter":
			if len(m.Styles) > 0 {
				picked := m.Styles[m.Cursor]
				m.Selected = &picked
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.move(0)
	}
	return m, nil
}

func (m StylePickerModel) View() string {
	end := min(m.Offset+m.Height, len(m.Styles))
	visible := m.Styles[m.Offset:end]
	marker := func(i int) string {
		if m.Offset+i == m.Cursor {
			return "▸"
		}
		return " "
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Style") + "\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit") + "\n\n")
	b.WriteString(catalogTable(visible, marker, m.Cursor-m.Offset) + "\n")
	if len(m.Styles) > m.Height {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  showing %d-%d of %d", m.Offset+1, end, len(m.Styles))) + "\n")
	}
	return b.String()
}

// pickStyle runs the picker. ok is false when the user quit without choosing.
func pickStyle(current params.Style) (style params.Style, ok bool, err error) {
	final, err := tea.NewProgram(NewStylePickerModel(params.Styles, current)).Run()
	if err != nil {
		return "", false, err
	}
	if picked := final.(StylePickerModel).Selected; picked != nil {
		return picked.ID, true, nil
	}
	return "", false, nil
}

// Package suggestions renders a history dropdown under a text field.
// It holds no selection logic of its own; the owning controller feeds it.
package suggestions

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the suggestions dropdown
type Styles struct {
	Box      lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4")).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282A36")).
			Background(lipgloss.Color("#8BE9FD")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Italic(true),
	}
}

// Model is the dropdown view state
type Model struct {
	title    string
	items    []string
	selected int
	maxShow  int
	width    int
	styles   Styles
}

// New creates an empty dropdown
func New() Model {
	return Model{
		maxShow: 5,
		styles:  DefaultStyles(),
	}
}

// SetItems replaces the entries and the highlighted index; -1 highlights nothing
func (m Model) SetItems(items []string, selected int) Model {
	m.items = items
	m.selected = selected
	if m.selected < 0 || m.selected >= len(items) {
		m.selected = -1
	}
	return m
}

// SetTitle sets the caption shown above the entries
func (m Model) SetTitle(title string) Model {
	m.title = title
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// SetMaxShow sets maximum visible items
func (m Model) SetMaxShow(n int) Model {
	m.maxShow = n
	return m
}

// SetWidth caps the rendered entry width; 0 means unbounded
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// Len returns number of items
func (m Model) Len() int {
	return len(m.items)
}

// window returns the slice bounds keeping the selection in view
func (m Model) window() (int, int) {
	start := 0
	if m.selected > m.maxShow/2 {
		start = m.selected - m.maxShow/2
	}
	end := start + m.maxShow
	if end > len(m.items) {
		end = len(m.items)
		start = end - m.maxShow
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// View renders the dropdown. An empty list renders nothing.
func (m Model) View() string {
	if len(m.items) == 0 {
		return ""
	}

	var views []string
	if m.title != "" {
		views = append(views, m.styles.Title.Render(m.title))
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		item := truncate(m.items[i], m.width)
		style := m.styles.Item
		prefix := "  "
		if i == m.selected {
			style = m.styles.Selected
			prefix = "> "
		}
		views = append(views, style.Render(prefix+item))
	}

	return m.styles.Box.Render(strings.Join(views, "\n"))
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

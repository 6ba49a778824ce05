package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchat/internal/connect"
)

func (m Model) renderStatusBar() string {
	var parts []string

	// 1. Mode
	parts = append(parts, ConnectionStyle.Background(AccentColor()).Render(string(m.mode)))

	// 2. Connection info
	if m.session.Ready() {
		spec, _ := m.form.Engine().Spec()
		parts = append(parts, ConnectionStyle.Render(fmt.Sprintf("%s %s", spec.Label, limitString(m.connectedTo, 24))))
	} else {
		parts = append(parts, OfflineStyle.Render("NOT CONNECTED"))
	}

	// 3. Pending calls
	if m.busy() {
		loadingStyle := lipgloss.NewStyle().Foreground(AccentColor()).Padding(0, 1)
		label := "Thinking..."
		if m.form.Phase() == connect.Connecting {
			label = connect.StatusConnecting
		}
		parts = append(parts, loadingStyle.Render(m.spinner.View()+" "+label))
	}

	// 4. Status message
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(SuccessColor()).Padding(0, 1)
		parts = append(parts, statusStyle.Render(m.statusMsg))
	}

	// 5. Error indicator
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Background(ErrorColor()).Foreground(TextPrimary()).Padding(0, 1)
		truncated := m.errorMsg
		if len(truncated) > 50 {
			truncated = truncated[:47] + "..."
		}
		parts = append(parts, errorStyle.Render("⚠ "+truncated))
	}

	// 6. Theme and help hint
	parts = append(parts, MetaStyle.Padding(0, 1).Render(fmt.Sprintf("%s · %s help", m.theme, strings.Join(m.keys.Help, "/"))))

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).Render(content)
}

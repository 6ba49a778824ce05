// internal/ui/model_render.go
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Width(m.width).Render(m.renderHeader())

	inputStyle := InputStyle
	if !m.session.Ready() {
		inputStyle = InputDisabledStyle
	}
	inputView := inputStyle.Width(m.width - 2).Render(m.chatInput.View())

	main := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		inputView,
		m.renderStatusBar(),
	)

	// Query suggestions sit just above the chat input
	if ctrl := m.suggesters[FieldChat]; ctrl.Visible() && !m.form.Visible() {
		panel := m.panel.SetTitle("Recent questions").SetItems(ctrl.Items(), ctrl.Selected()).View()
		if panel != "" {
			y := max(m.height-statusBarHeight-inputHeight-lipgloss.Height(panel), 0)
			main = overlay.Composite(panel, main, overlay.Left, overlay.Top, 2, y)
		}
	}

	if m.form.Visible() {
		main = m.renderFormPopup(main)
	}

	// Help popup overlay (render last to be on top)
	if m.showHelpPopup {
		main = m.renderHelpPopup(main)
	}

	return main
}

func (m Model) renderHeader() string {
	title := "Data Assistant"
	if m.serverURL != "" {
		title = fmt.Sprintf("%s · %s", title, limitString(m.serverURL, 40))
	}
	if m.mode == BrowseMode {
		title += " · browsing (↑/↓ select, y copy, esc back)"
	}
	return title
}

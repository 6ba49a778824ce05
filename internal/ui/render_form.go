package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/ezchat/internal/connect"
)

var fieldLabels = map[Field]string{
	FieldEngine:   "Type",
	FieldHost:     "Host",
	FieldPort:     "Port",
	FieldUsername: "Username",
	FieldPassword: "Password",
	FieldDatabase: "Database",
}

func (m Model) renderFormPopup(main string) string {
	var content strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render("New Connection")
	content.WriteString(title)
	content.WriteString("\n\n")

	for _, f := range formFields {
		content.WriteString(m.renderFormField(f))
		content.WriteString("\n")
		if ctrl, ok := m.suggesters[f]; ok && ctrl.Visible() && m.formFocus == f {
			panel := m.panel.SetTitle("").SetItems(ctrl.Items(), ctrl.Selected()).View()
			if panel != "" {
				content.WriteString(lipgloss.NewStyle().MarginLeft(11).Render(panel))
				content.WriteString("\n")
			}
		}
	}

	content.WriteString("\n")
	switch status := m.form.Status(); {
	case m.form.Phase() == connect.Connecting:
		content.WriteString(MetaStyle.Render(m.spinner.View() + " " + status))
	case status != "":
		content.WriteString(ErrorStyle.Render(status))
	default:
		content.WriteString(" ")
	}
	content.WriteString("\n\n")

	hint := "tab next · ←/→ type · ctrl+space history · enter connect · esc close"
	content.WriteString(lipgloss.NewStyle().Faint(true).Render(hint))

	popupWidth := min(64, max(m.width-4, 30))
	popupBox := PopupStyle.
		Width(popupWidth).
		Background(PanelBg()).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) renderFormField(f Field) string {
	labelStyle := FieldLabelStyle
	if f == m.formFocus {
		labelStyle = FieldActiveLabelStyle
	}
	label := labelStyle.Render(fieldLabels[f])

	if f == FieldEngine {
		spec, _ := m.form.Engine().Spec()
		value := "◀ " + spec.Label + " ▶"
		if f == m.formFocus {
			value = SuggestionSelectedStyle.Render(value)
		}
		return label + " " + value
	}

	if !m.enabled(f) {
		return label + " " + FieldDisabledStyle.Render("n/a for file-based databases")
	}
	return label + " " + m.inputs[f].View()
}

package ui

import "github.com/nhath/ezchat/internal/applog"

// toggleTheme flips between dark and light at runtime
func (m Model) toggleTheme() Model {
	m.theme = m.theme.Toggle()
	InitStyles(m.config.Themes.Get(m.theme))
	m.applyPanelStyles()
	m.renderer.SetStyle(string(m.theme))
	applog.Event("theme", "%s", m.theme)
	return m.refreshTranscript()
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

func (m Model) renderHelpPopup(main string) string {
	var content strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render("Keyboard Shortcuts")
	content.WriteString(title)
	content.WriteString("\n\n")

	keys := m.keys

	section := func(name string, bindings []struct{ key, desc string }) {
		header := lipgloss.NewStyle().Bold(true).Foreground(HighlightColor()).Render(name)
		content.WriteString(header + "\n")
		for _, b := range bindings {
			keyStyle := lipgloss.NewStyle().Foreground(SuccessColor()).Width(15)
			descStyle := lipgloss.NewStyle().Foreground(TextPrimary())
			content.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(b.key), descStyle.Render(b.desc)))
		}
		content.WriteString("\n")
	}

	section("Chat", []struct{ key, desc string }{
		{strings.Join(keys.Submit, "/"), "Send message / accept highlighted suggestion"},
		{strings.Join(keys.Up, "/") + " " + strings.Join(keys.Down, "/"), "Scroll / move in suggestions"},
		{strings.Join(keys.Suggest, "/"), "Show recent questions"},
		{strings.Join(keys.Browse, "/"), "Browse messages"},
		{strings.Join(keys.Copy, "/"), "Copy selected message (browse)"},
	})

	section("Connection", []struct{ key, desc string }{
		{strings.Join(keys.OpenConnection, "/"), "New connection"},
		{strings.Join(keys.NextField, "/"), "Next field"},
		{strings.Join(keys.PrevField, "/"), "Previous field"},
		{strings.Join(keys.EnginePrev, "/") + " " + strings.Join(keys.EngineNext, "/"), "Change database type"},
		{strings.Join(keys.Suggest, "/"), "Show saved values"},
		{strings.Join(keys.Submit, "/"), "Connect"},
	})

	section("Other", []struct{ key, desc string }{
		{strings.Join(keys.ToggleTheme, "/"), "Toggle dark/light theme"},
		{strings.Join(keys.Dismiss, "/"), "Close panel / popup"},
		{strings.Join(keys.Help, "/"), "Show this help"},
		{strings.Join(keys.Quit, "/"), "Quit"},
	})

	content.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc to close"))

	popupWidth := 56
	popupBox := PopupStyle.
		Width(popupWidth).
		MaxHeight(max(m.height-4, 10)).
		Background(PanelBg()).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

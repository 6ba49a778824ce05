// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchat/internal/config"
)

var (
	textPrimary    lipgloss.Color
	textFaint      lipgloss.Color
	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	userBubble     lipgloss.Color
	botBubble      lipgloss.Color
	bgPrimary      lipgloss.Color
	panelBg        lipgloss.Color
	borderColor    lipgloss.Color

	// Styles
	HeaderStyle             lipgloss.Style
	StatusBarStyle          lipgloss.Style
	ConnectionStyle         lipgloss.Style
	OfflineStyle            lipgloss.Style
	InputStyle              lipgloss.Style
	InputDisabledStyle      lipgloss.Style
	PromptStyle             lipgloss.Style
	UserLabelStyle          lipgloss.Style
	BotLabelStyle           lipgloss.Style
	UserMessageStyle        lipgloss.Style
	BotMessageStyle         lipgloss.Style
	ErrorMessageStyle       lipgloss.Style
	TypingStyle             lipgloss.Style
	CopyLabelStyle          lipgloss.Style
	CopiedLabelStyle        lipgloss.Style
	BrowseCursorStyle       lipgloss.Style
	SuggestionBoxStyle      lipgloss.Style
	SuggestionItemStyle     lipgloss.Style
	SuggestionSelectedStyle lipgloss.Style
	FieldLabelStyle         lipgloss.Style
	FieldActiveLabelStyle   lipgloss.Style
	FieldDisabledStyle      lipgloss.Style
	SuccessStyle            lipgloss.Style
	ErrorStyle              lipgloss.Style
	MetaStyle               lipgloss.Style
	PopupStyle              lipgloss.Style
)

// Color getter functions for use in components
func TextPrimary() lipgloss.Color    { return textPrimary }
func TextFaint() lipgloss.Color      { return textFaint }
func AccentColor() lipgloss.Color    { return accentColor }
func SuccessColor() lipgloss.Color   { return successColor }
func ErrorColor() lipgloss.Color     { return errorColor }
func HighlightColor() lipgloss.Color { return highlightColor }
func BgPrimary() lipgloss.Color      { return bgPrimary }
func PanelBg() lipgloss.Color        { return panelBg }

// InitStyles rebuilds every style from palette. Called again on theme toggle.
func InitStyles(palette config.Palette) {
	textPrimary = lipgloss.Color(palette.Text)
	textFaint = lipgloss.Color(palette.TextFaint)
	accentColor = lipgloss.Color(palette.Accent)
	successColor = lipgloss.Color(palette.Success)
	errorColor = lipgloss.Color(palette.Error)
	highlightColor = lipgloss.Color(palette.Highlight)
	userBubble = lipgloss.Color(palette.UserBubble)
	botBubble = lipgloss.Color(palette.BotBubble)
	bgPrimary = lipgloss.Color(palette.Background)
	panelBg = lipgloss.Color(palette.PanelBg)
	borderColor = lipgloss.Color(palette.Border)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(bgPrimary).
		Background(accentColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(panelBg)

	ConnectionStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Background(successColor).
		Foreground(bgPrimary)

	OfflineStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Background(textFaint).
		Foreground(textPrimary)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)

	InputDisabledStyle = InputStyle.
		BorderForeground(textFaint)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	UserLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(userBubble)

	BotLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	UserMessageStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(userBubble).
		PaddingLeft(1)

	BotMessageStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(botBubble).
		PaddingLeft(1)

	ErrorMessageStyle = BotMessageStyle.
		BorderForeground(errorColor).
		Foreground(errorColor)

	TypingStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	CopyLabelStyle = lipgloss.NewStyle().
		Foreground(textFaint)

	CopiedLabelStyle = lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)

	BrowseCursorStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)

	SuggestionBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	SuggestionItemStyle = lipgloss.NewStyle().
		Foreground(textPrimary)

	SuggestionSelectedStyle = lipgloss.NewStyle().
		Foreground(bgPrimary).
		Background(highlightColor).
		Bold(true)

	FieldLabelStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Width(10)

	FieldActiveLabelStyle = FieldLabelStyle.
		Foreground(accentColor).
		Bold(true)

	FieldDisabledStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(1, 2)
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ezchat/internal/chat"
)

// renderTranscript lays out every message and returns the first line of each
func (m Model) renderTranscript(msgs []chat.Message) (string, []int) {
	var b strings.Builder
	offsets := make([]int, len(msgs))
	line := 0

	for i, msg := range msgs {
		offsets[i] = line
		block := m.renderMessage(msg, m.mode == BrowseMode && i == m.browseIdx)
		b.WriteString(block)
		b.WriteString("\n\n")
		line += lipgloss.Height(block) + 1
	}
	return strings.TrimRight(b.String(), "\n"), offsets
}

func (m Model) renderMessage(msg chat.Message, selected bool) string {
	var header string
	if msg.Sender == chat.User {
		header = UserLabelStyle.Render("You")
	} else {
		header = BotLabelStyle.Render("Assistant")
	}
	if selected {
		header = BrowseCursorStyle.Render("▶ ") + header
	}
	if msg.CopyLabel != "" {
		label := CopyLabelStyle.Render("[" + msg.CopyLabel + "]")
		if msg.CopyLabel == chat.CopiedLabel {
			label = CopiedLabelStyle.Render("[" + msg.CopyLabel + "]")
		}
		header += " " + label
	}

	width := max(m.width-4, 20)
	var body string
	switch {
	case msg.IsTyping():
		body = TypingStyle.Render(m.spinner.View() + " thinking...")
	case msg.Sender == chat.User:
		body = UserMessageStyle.Width(width).Render(chat.PlainText(msg.Content))
	case msg.Kind == chat.Error:
		body = ErrorMessageStyle.Width(width).Render(chat.PlainText(msg.Content))
	default:
		body = BotMessageStyle.Render(m.renderer.Render(msg.Content))
	}

	return header + "\n" + body
}

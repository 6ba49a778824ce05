package ui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/chat"
)

// SystemClipboard writes through atotto/clipboard
func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// copyToClipboardCmd writes text for copy token of message id
func (m Model) copyToClipboardCmd(id, token int, text string) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		return ClipboardCopiedMsg{MessageID: id, Token: token, Err: write(text)}
	}
}

// revertCopyCmd fires once the "Copied!" feedback has been shown long enough
func revertCopyCmd(id, token int) tea.Cmd {
	return tea.Tick(chat.CopyFeedback, func(time.Time) tea.Msg {
		return CopyRevertMsg{MessageID: id, Token: token}
	})
}

package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/chat"
)

const (
	hintNotReady = "Press ctrl+o and connect to a database first"
	hintBusy     = "Still waiting for the previous answer"
)

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.suggesters[FieldChat]

	if matchKey(msg, m.keys.Browse) {
		m.coord.Interact(targetTranscript)
		m.mode = BrowseMode
		m.browseIdx = len(m.session.Messages()) - 1
		m.chatInput.Blur()
		return m.refreshTranscript().scrollToSelection(), nil
	}

	if ctrl.Visible() {
		switch {
		case matchKey(msg, m.keys.Up):
			ctrl.MoveUp()
			return m, nil
		case matchKey(msg, m.keys.Down):
			ctrl.MoveDown()
			return m, nil
		case matchKey(msg, m.keys.Submit) && ctrl.Highlighted():
			if v, ok := ctrl.Accept(); ok {
				m.chatInput.SetValue(v)
				m.chatInput.CursorEnd()
			}
			return m, nil
		}
	}

	switch {
	case matchKey(msg, m.keys.Submit):
		return m.submitChat()

	case matchKey(msg, m.keys.Suggest):
		if m.session.Ready() {
			ctrl.Focus(m.chatInput.Value())
		}
		return m, nil

	case matchKey(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil

	case matchKey(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil

	case msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if !m.session.Ready() {
		m.setStatus(hintNotReady)
		return m, nil
	}

	before := m.chatInput.Value()
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	if after := m.chatInput.Value(); after != before {
		ctrl.Input(after)
	}
	return m, cmd
}

func (m Model) submitChat() (tea.Model, tea.Cmd) {
	req, ok, err := m.session.Submit(m.chatInput.Value())
	switch {
	case errors.Is(err, chat.ErrNotReady):
		m.setStatus(hintNotReady)
		return m, nil
	case errors.Is(err, chat.ErrBusy):
		m.setStatus(hintBusy)
		return m, nil
	case !ok:
		return m, nil
	}

	m.chatInput.Reset()
	m.coord.Dismiss()
	m.statusMsg = ""
	m.errorMsg = ""
	return m.refreshTranscript(), tea.Batch(m.chatCmd(req), m.spinner.Tick)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	msgs := m.session.Messages()

	switch {
	case matchKey(msg, m.keys.Browse):
		m.mode = ChatMode
		m.focusChat()
		return m.refreshTranscript(), nil

	case matchKey(msg, m.keys.Up):
		if m.browseIdx > 0 {
			m.browseIdx--
		}
		return m.refreshTranscript().scrollToSelection(), nil

	case matchKey(msg, m.keys.Down):
		if m.browseIdx < len(msgs)-1 {
			m.browseIdx++
		}
		return m.refreshTranscript().scrollToSelection(), nil

	case matchKey(msg, m.keys.Copy):
		if m.browseIdx < 0 || m.browseIdx >= len(msgs) {
			return m, nil
		}
		id := msgs[m.browseIdx].ID
		text, token, ok := m.session.Copy(id)
		if !ok {
			return m, nil
		}
		return m, m.copyToClipboardCmd(id, token, text)
	}
	return m, nil
}

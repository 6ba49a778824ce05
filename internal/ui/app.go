// internal/ui/app.go
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/applog"
	"github.com/nhath/ezchat/internal/chat"
	"github.com/nhath/ezchat/internal/connect"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
	inputHeight     = 3 // rounded border around one line
)

// Update handles messages and updates model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-statusBarHeight-inputHeight, 1)
		m.chatInput.Width = max(msg.Width-8, 10)
		m.renderer.SetWidth(max(msg.Width-6, 20))
		m.panel = m.panel.SetWidth(max(msg.Width/2, 20))
		m.lastEdits = -1
		return m.refreshTranscript(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnectResultMsg:
		return m.handleConnectResult(msg)

	case ChatResultMsg:
		m.session.Resolve(msg.Seq, chatResult(msg))
		if msg.Err != nil {
			applog.Error("chat #%d: %v", msg.Seq, msg.Err)
		}
		m.statusMsg = ""
		return m.refreshTranscript(), nil

	case ClipboardCopiedMsg:
		if msg.Err != nil {
			applog.Error("clipboard: %v", msg.Err)
			m.setError("Clipboard unavailable: " + msg.Err.Error())
			return m, nil
		}
		if !m.session.MarkCopied(msg.MessageID, msg.Token) {
			return m, nil
		}
		return m.refreshTranscript(), revertCopyCmd(msg.MessageID, msg.Token)

	case ProfileSavedMsg:
		if msg.Err != nil {
			applog.Error("%v", msg.Err)
			m.setError("Could not save profile: " + msg.Err.Error())
			return m, nil
		}
		applog.Event("profile", "saved %s", msg.Name)
		return m, nil

	case CopyRevertMsg:
		m.session.RevertCopy(msg.MessageID, msg.Token)
		return m.refreshTranscript(), nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m.refreshTranscript(), cmd
	}

	return m, nil
}

// busy reports whether any backend call is outstanding
func (m Model) busy() bool {
	return m.form.Phase() == connect.Connecting || m.session.State() == chat.AwaitingResponse
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case matchKey(msg, m.keys.Quit):
		return m, tea.Quit

	case matchKey(msg, m.keys.Help):
		m.coord.Interact(targetHelp)
		if m.showHelpPopup {
			m.popupStack.Remove(popupHelp)
			m.showHelpPopup = false
			return m, nil
		}
		m.showHelpPopup = true
		m.popupStack.Push(popupHelp, func(m *Model) bool {
			if !m.showHelpPopup {
				return false
			}
			m.showHelpPopup = false
			return true
		})
		return m, nil

	case matchKey(msg, m.keys.ToggleTheme):
		m.coord.Interact(targetTheme)
		return m.toggleTheme(), nil

	case matchKey(msg, m.keys.Dismiss):
		// Innermost first: suggestion panel, popup, browse mode
		if m.coord.Open() != nil {
			m.coord.Dismiss()
			return m, nil
		}
		if m.popupStack.CloseTop(&m) {
			return m, nil
		}
		if m.mode == BrowseMode {
			m.mode = ChatMode
			m.focusChat()
			return m.refreshTranscript(), nil
		}
		return m, nil
	}

	if m.showHelpPopup {
		return m, nil
	}

	if m.form.Visible() {
		return m.handleFormKey(msg)
	}

	if matchKey(msg, m.keys.OpenConnection) {
		m.mode = ChatMode
		return m.openForm(), nil
	}

	if m.mode == BrowseMode {
		return m.handleBrowseKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleConnectResult(msg ConnectResultMsg) (tea.Model, tea.Cmd) {
	eff := m.form.Resolve(connectResult(msg.Err))
	if eff == nil {
		applog.Event("connect", "%s %s failed: %v", msg.Engine, msg.Database, msg.Err)
		if !m.form.Visible() {
			// Closed while pending; the form keeps the status for when it reopens
			m.setError("Connection failed: " + m.form.Status())
		}
		return m, nil
	}

	applog.Event("connect", "%s %s ok", msg.Engine, msg.Database)
	m.connectedTo = eff.Config.Database
	m.session.SetReady(true)
	m.session.AddBotMessage(eff.Confirmation)
	m.chatInput.Placeholder = "Ask a question about your data..."
	m.setStatus("Connected")

	// The form closed itself; drop its popup entry and return to chat
	m.popupStack.Remove(popupForm)
	m.coord.Dismiss()
	for f, ti := range m.inputs {
		ti.Blur()
		m.inputs[f] = ti
	}
	m.mode = ChatMode
	m.focusChat()
	return m.refreshTranscript(), tea.Batch(textinput.Blink, m.saveProfileCmd(eff.Config))
}

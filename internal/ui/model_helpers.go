// internal/ui/model_helpers.go
// Small helper functions used across the UI layer
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/ui/components/suggestions"
)

// matchKey returns true if the key message matches any of the provided key strings
func matchKey(msg tea.KeyMsg, keys []string) bool {
	keyStr := msg.String()
	for _, k := range keys {
		if k == keyStr {
			return true
		}
	}
	return false
}

// limitString truncates s to maxLen by replacing the middle with "..."
func limitString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	half := (maxLen - 3) / 2
	return s[:half] + "..." + s[len(s)-half:]
}

func (m *Model) applyPanelStyles() {
	m.panel = m.panel.SetStyles(suggestions.Styles{
		Box:      SuggestionBoxStyle,
		Item:     SuggestionItemStyle,
		Selected: SuggestionSelectedStyle,
		Title:    MetaStyle,
	})
}

// enabled reports whether f accepts focus given the selected engine
func (m Model) enabled(f Field) bool {
	if f == FieldHost || f == FieldPort {
		return m.form.HostPortEnabled()
	}
	return true
}

// openForm shows the connection form and focuses its first field
func (m Model) openForm() Model {
	m.coord.Interact(targetForm)
	m.form.Open()
	m.syncFormInputs()
	m.chatInput.Blur()
	if !m.popupStack.Contains(popupForm) {
		m.popupStack.Push(popupForm, func(m *Model) bool {
			if !m.form.Visible() {
				return false
			}
			m.closeForm()
			return true
		})
	}
	return m.focusFormField(FieldEngine)
}

// closeForm hides the form and hands focus back to the chat input
func (m *Model) closeForm() {
	m.coord.Dismiss()
	m.form.Close()
	m.popupStack.Remove(popupForm)
	for f, ti := range m.inputs {
		ti.Blur()
		m.inputs[f] = ti
	}
	m.focusChat()
}

// syncFormInputs copies the form's values into the text inputs
func (m *Model) syncFormInputs() {
	values := map[Field]string{
		FieldHost:     m.form.Host(),
		FieldPort:     m.form.Port(),
		FieldUsername: m.form.Username(),
		FieldPassword: m.form.Password(),
		FieldDatabase: m.form.Database(),
	}
	for f, v := range values {
		ti := m.inputs[f]
		ti.SetValue(v)
		if f == FieldDatabase {
			ti.Placeholder = m.form.DatabasePlaceholder()
		}
		m.inputs[f] = ti
	}
}

// focusFormField moves focus to f and reports the interaction
func (m Model) focusFormField(f Field) Model {
	m.coord.Interact(string(f))
	m.formFocus = f
	for name, ti := range m.inputs {
		if name == f {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[name] = ti
	}
	if ctrl, ok := m.suggesters[f]; ok {
		ctrl.Focus(m.inputs[f].Value())
	}
	return m
}

// stepFormFocus moves to the next enabled field in tab order
func (m Model) stepFormFocus(step int) Model {
	idx := 0
	for i, f := range formFields {
		if f == m.formFocus {
			idx = i
			break
		}
	}
	n := len(formFields)
	for i := 0; i < n; i++ {
		idx = ((idx+step)%n + n) % n
		if m.enabled(formFields[idx]) {
			break
		}
	}
	return m.focusFormField(formFields[idx])
}

// focusChat focuses the chat input when chat is unlocked
func (m *Model) focusChat() {
	if !m.session.Ready() {
		m.chatInput.Blur()
		return
	}
	m.chatInput.Focus()
	m.suggesters[FieldChat].Focus(m.chatInput.Value())
}

// refreshTranscript re-renders the transcript and scrolls to the newest
// message whenever one was added or removed
func (m Model) refreshTranscript() Model {
	msgs := m.session.Messages()
	if m.browseIdx >= len(msgs) {
		m.browseIdx = len(msgs) - 1
	}
	content, offsets := m.renderTranscript(msgs)
	m.viewport.SetContent(content)
	m.offsets = offsets
	if edits := m.session.Edits(); edits != m.lastEdits {
		m.viewport.GotoBottom()
		m.lastEdits = edits
	}
	return m
}

// scrollToSelection brings the browsed message into view
func (m Model) scrollToSelection() Model {
	if m.browseIdx < 0 || m.browseIdx >= len(m.offsets) {
		return m
	}
	top := m.offsets[m.browseIdx]
	if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(top)
	}
	return m
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.errorMsg = ""
}

func (m *Model) setError(s string) {
	m.errorMsg = s
	m.statusMsg = ""
}

package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/connect"
)

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl, hasPanel := m.suggesters[m.formFocus]

	if hasPanel && ctrl.Visible() {
		switch {
		case matchKey(msg, m.keys.Up):
			ctrl.MoveUp()
			return m, nil
		case matchKey(msg, m.keys.Down):
			ctrl.MoveDown()
			return m, nil
		case matchKey(msg, m.keys.Submit) && ctrl.Highlighted():
			if v, ok := ctrl.Accept(); ok {
				m.setField(m.formFocus, v)
			}
			return m, nil
		}
	}

	switch {
	case matchKey(msg, m.keys.NextField):
		return m.stepFormFocus(1), nil

	case matchKey(msg, m.keys.PrevField):
		return m.stepFormFocus(-1), nil

	case matchKey(msg, m.keys.Suggest):
		if hasPanel {
			ctrl.Hover()
		}
		return m, nil

	case matchKey(msg, m.keys.Submit):
		return m.submitForm()

	case m.formFocus == FieldEngine:
		switch {
		case matchKey(msg, m.keys.EnginePrev):
			m.form.CycleEngine(-1)
			m.syncFormInputs()
		case matchKey(msg, m.keys.EngineNext):
			m.form.CycleEngine(1)
			m.syncFormInputs()
		}
		return m, nil
	}

	ti, ok := m.inputs[m.formFocus]
	if !ok {
		return m, nil
	}
	before := ti.Value()
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[m.formFocus] = ti
	if after := ti.Value(); after != before {
		m.pushField(m.formFocus, after)
	}
	return m, cmd
}

// setField writes v into both the text input and the form
func (m *Model) setField(f Field, v string) {
	ti := m.inputs[f]
	ti.SetValue(v)
	ti.CursorEnd()
	m.inputs[f] = ti
	m.pushField(f, v)
}

// pushField copies an edited value into the form controller
func (m *Model) pushField(f Field, v string) {
	switch f {
	case FieldHost:
		m.form.SetHost(v) //nolint:errcheck
	case FieldPort:
		m.form.SetPort(v) //nolint:errcheck
	case FieldUsername:
		m.form.SetUsername(v)
	case FieldPassword:
		m.form.SetPassword(v)
	case FieldDatabase:
		m.form.SetDatabase(v)
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	cfg, err := m.form.Submit()
	if errors.Is(err, connect.ErrInFlight) {
		return m, nil
	}
	m.coord.Dismiss()
	return m, tea.Batch(m.connectCmd(cfg), m.spinner.Tick)
}

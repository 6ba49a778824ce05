package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/connect"
)

// saveProfileCmd remembers a successful connection. Saving writes the config
// file and may hit the OS keyring, so it runs off the update loop.
func (m Model) saveProfileCmd(cfg connect.Config) tea.Cmd {
	conf := m.config
	if !conf.RememberProfiles {
		return nil
	}
	return func() tea.Msg {
		name, err := conf.RememberConnection(cfg)
		return ProfileSavedMsg{Name: name, Err: err}
	}
}

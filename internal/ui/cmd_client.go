package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/applog"
	"github.com/nhath/ezchat/internal/chat"
	"github.com/nhath/ezchat/internal/client"
	"github.com/nhath/ezchat/internal/connect"
)

// connectCmd posts cfg to the backend. The call always runs to completion.
func (m Model) connectCmd(cfg connect.Config) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		applog.Event("connect", "%s %s@%s:%s/%s", cfg.Engine, cfg.Username, cfg.Host, cfg.Port, cfg.Database)
		_, err := backend.Connect(context.Background(), cfg)
		return ConnectResultMsg{Engine: string(cfg.Engine), Database: cfg.Database, Err: err}
	}
}

// chatCmd posts one message to the backend
func (m Model) chatCmd(req chat.Request) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		applog.Event("chat", "#%d %s", req.Seq, req.Message)
		resp, err := backend.Chat(context.Background(), req.Message)
		return ChatResultMsg{Seq: req.Seq, Response: resp, Err: err}
	}
}

// connectResult maps a client error onto the form's outcome taxonomy
func connectResult(err error) connect.Result {
	if err == nil {
		return connect.Result{Outcome: connect.Succeeded}
	}
	var serr *client.ServerError
	if errors.As(err, &serr) {
		return connect.Result{Outcome: connect.Rejected, Message: serr.Message}
	}
	return connect.Result{Outcome: connect.TransportFailed}
}

// chatResult maps a chat reply onto the session's outcome taxonomy
func chatResult(msg ChatResultMsg) chat.Result {
	if msg.Err == nil {
		return chat.Result{Outcome: chat.Answered, Response: msg.Response}
	}
	var serr *client.ServerError
	if errors.As(msg.Err, &serr) {
		return chat.Result{Outcome: chat.Rejected, Response: serr.Message}
	}
	return chat.Result{Outcome: chat.TransportFailed}
}

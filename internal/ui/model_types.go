// internal/ui/model_types.go
// Type definitions for the UI layer
package ui

import (
	"context"

	"github.com/nhath/ezchat/internal/client"
	"github.com/nhath/ezchat/internal/connect"
)

// Mode is what the main screen's keys act on
type Mode string

const (
	ChatMode   Mode = "CHAT"
	BrowseMode Mode = "BROWSE"
)

// Field identifies a focusable input. The string doubles as the
// interaction target reported to the suggestion coordinator.
type Field string

const (
	FieldEngine   Field = "db-type"
	FieldHost     Field = "host"
	FieldPort     Field = "port"
	FieldUsername Field = "username"
	FieldPassword Field = "password"
	FieldDatabase Field = "db-name"
	FieldChat     Field = "user-input"
)

// formFields is the tab order inside the connection form
var formFields = []Field{FieldEngine, FieldHost, FieldPort, FieldUsername, FieldPassword, FieldDatabase}

// Interaction targets that are not fields
const (
	targetForm       = "connection-form"
	targetTranscript = "chat-box"
	targetTheme      = "theme-toggle"
	targetHelp       = "help"
)

// Backend is the assistant service as the UI sees it
type Backend interface {
	Connect(ctx context.Context, cfg connect.Config) (client.ConnectReply, error)
	Chat(ctx context.Context, message string) (string, error)
}

// ClipboardWriter puts text on the system clipboard
type ClipboardWriter func(text string) error

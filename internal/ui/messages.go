// internal/ui/messages.go
package ui

// ConnectResultMsg is sent when a /connect_db call finishes
type ConnectResultMsg struct {
	Engine   string
	Database string
	Err      error
}

// ChatResultMsg is sent when a /chat call finishes
type ChatResultMsg struct {
	Seq      int
	Response string
	Err      error
}

// ClipboardCopiedMsg reports the outcome of a clipboard write
type ClipboardCopiedMsg struct {
	MessageID int
	Token     int
	Err       error
}

// ProfileSavedMsg is sent when a connection was stored as a profile
type ProfileSavedMsg struct {
	Name string
	Err  error
}

// CopyRevertMsg restores a message's copy label after the feedback period
type CopyRevertMsg struct {
	MessageID int
	Token     int
}

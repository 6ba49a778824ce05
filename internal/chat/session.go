// Package chat owns the transcript and the request/response cycle.
package chat

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/nhath/ezchat/internal/applog"
	"github.com/nhath/ezchat/internal/history"
)

// CopyFeedback is how long a message shows "Copied!" before reverting
const CopyFeedback = 2 * time.Second

const (
	Welcome     = "Hello! I'm your intelligent data assistant. Press ctrl+o to open a new connection."
	TypingText  = "● ● ●"
	Unexpected  = "<p>An unexpected error occurred while fetching the response.</p>"
	errorFormat = "<p><strong>Error:</strong> %s</p>"
)

var (
	// ErrNotReady is returned when submitting before a connection succeeded
	ErrNotReady = errors.New("not connected")
	// ErrBusy is returned when submitting while a response is pending
	ErrBusy = errors.New("waiting for the previous response")
)

// State is the request cycle state
type State int

const (
	Idle State = iota
	AwaitingResponse
)

// Request is one outgoing chat call
type Request struct {
	Seq     int
	Message string
}

// Outcome classifies a finished chat request
type Outcome int

const (
	Answered Outcome = iota
	Rejected
	TransportFailed
)

// Result is the finished chat request
type Result struct {
	Outcome  Outcome
	Response string // markup when Answered, server error text when Rejected
}

// Session is the chat controller
type Session struct {
	messages []Message
	nextID   int
	seq      int
	state    State
	ready    bool
	revision int
	edits    int

	store history.Recorder
}

// NewSession starts a transcript with the welcome message
func NewSession(store history.Recorder) *Session {
	s := &Session{store: store}
	s.append(Bot, Welcome, Normal)
	return s
}

// SetReady unlocks submission
func (s *Session) SetReady(ready bool) { s.ready = ready }

// Ready reports whether input is enabled
func (s *Session) Ready() bool { return s.ready }

// State returns the request cycle state
func (s *Session) State() State { return s.state }

// Messages returns a copy of the transcript
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Revision changes whenever the transcript changes, copy labels included
func (s *Session) Revision() int { return s.revision }

// Edits changes whenever a message is added or removed
func (s *Session) Edits() int { return s.edits }

// Submit turns raw input into a request. Blank input is ignored without error.
// On success the caller clears the input, hides suggestions and issues the request.
func (s *Session) Submit(raw string) (Request, bool, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Request{}, false, nil
	}
	if !s.ready {
		return Request{}, false, ErrNotReady
	}
	if s.state == AwaitingResponse {
		return Request{}, false, ErrBusy
	}

	s.append(User, text, Normal)
	if s.store != nil {
		if err := s.store.Record(history.Queries, text); err != nil {
			applog.Error("record query: %v", err)
		}
	}
	s.ShowTyping()

	s.seq++
	s.state = AwaitingResponse
	return Request{Seq: s.seq, Message: text}, true, nil
}

// Resolve removes the typing placeholder and appends the bot reply for req
func (s *Session) Resolve(seq int, r Result) {
	s.RemoveTyping()
	if seq == s.seq {
		s.state = Idle
	}

	switch r.Outcome {
	case Answered:
		s.append(Bot, r.Response, Normal)
	case Rejected:
		s.append(Bot, fmt.Sprintf(errorFormat, html.EscapeString(r.Response)), Error)
	default:
		s.append(Bot, Unexpected, Error)
	}
}

// AddBotMessage appends an informational bot message
func (s *Session) AddBotMessage(content string) {
	s.append(Bot, content, Normal)
}

// ShowTyping inserts the placeholder unless one already exists
func (s *Session) ShowTyping() {
	for _, m := range s.messages {
		if m.IsTyping() {
			return
		}
	}
	s.append(Bot, TypingText, Typing)
}

// RemoveTyping drops the placeholder if present
func (s *Session) RemoveTyping() {
	for i, m := range s.messages {
		if m.IsTyping() {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.revision++
			s.edits++
			return
		}
	}
}

// Copy returns the plain text of message id, as displayed, with markup
// stripped. The token identifies this copy for MarkCopied and RevertCopy.
func (s *Session) Copy(id int) (string, int, bool) {
	i := s.index(id)
	if i < 0 || s.messages[i].IsTyping() {
		return "", 0, false
	}
	m := &s.messages[i]
	m.copyToken++
	return PlainText(m.Content), m.copyToken, true
}

// MarkCopied flips the label to "Copied!" once the clipboard write succeeded.
// It reports false when a newer copy of the message superseded token.
func (s *Session) MarkCopied(id, token int) bool {
	i := s.index(id)
	if i < 0 || s.messages[i].copyToken != token {
		return false
	}
	s.messages[i].CopyLabel = CopiedLabel
	s.revision++
	return true
}

// RevertCopy restores the label unless a newer copy of the same message happened
func (s *Session) RevertCopy(id, token int) {
	i := s.index(id)
	if i < 0 {
		return
	}
	m := &s.messages[i]
	if m.copyToken != token {
		return
	}
	m.CopyLabel = CopyLabel
	s.revision++
}

func (s *Session) index(id int) int {
	for i, m := range s.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) append(sender Sender, content string, kind Kind) {
	s.nextID++
	label := CopyLabel
	if kind == Typing {
		label = ""
	}
	s.messages = append(s.messages, Message{
		ID:        s.nextID,
		Sender:    sender,
		Content:   content,
		Kind:      kind,
		CopyLabel: label,
	})
	s.revision++
	s.edits++
}

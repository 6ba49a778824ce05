package chat

// Sender identifies who produced a message
type Sender string

const (
	User Sender = "user"
	Bot  Sender = "bot"
)

// Kind distinguishes how a message is presented
type Kind int

const (
	Normal Kind = iota
	Error
	Typing
)

const (
	CopyLabel   = "Copy"
	CopiedLabel = "Copied!"
)

// Message is one transcript entry. Content may carry simple markup.
type Message struct {
	ID        int
	Sender    Sender
	Content   string
	Kind      Kind
	CopyLabel string

	copyToken int
}

// IsTyping reports whether m is the pending-response placeholder
func (m Message) IsTyping() bool {
	return m.Kind == Typing
}

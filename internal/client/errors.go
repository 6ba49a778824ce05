package client

import "fmt"

// ServerError is a structured rejection from the collaborator
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// TransportError wraps failures where no usable response arrived
type TransportError struct {
	Op         string
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Underlying)
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// wrapTransport creates a TransportError for op
func wrapTransport(op string, err error) error {
	return &TransportError{Op: op, Underlying: err}
}

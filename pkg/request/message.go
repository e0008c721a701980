package request

import "fmt"

// Message represents a message response.
type Message struct {
	Message string `json:"Message" xml:"Message"`
}

// NewMessage creates a new Message, formatting when args are given.
func NewMessage(message string, args ...any) *Message {
	msg := message
	if len(args) > 0 {
		msg = fmt.Sprintf(message, args...)
	}
	return &Message{
		Message: msg,
	}
}

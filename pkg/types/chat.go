package types

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser is a message authored by the user.
	RoleUser Role = "user"

	// RoleModel is a message authored by the assistant.
	RoleModel Role = "model"
)

// ChatMessage is a single entry in a chat transcript.
//
// A user message is immutable once appended. A model message is created
// empty and its Text grows append-only while the response streams, then
// becomes immutable once the stream ends or errors.
type ChatMessage struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Text       string `json:"text"`
	IsThinking bool   `json:"isThinking,omitempty"`
}

// Clone returns a copy of the message.
func (m *ChatMessage) Clone() *ChatMessage {
	c := *m
	return &c
}

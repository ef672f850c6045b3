package llm

import "context"

// TextGenerator is the interface for single-shot LLM text completion.
// Tag suggestion uses completion style (one prompt, one response).
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GetModel() string
}

// Turn is one prior exchange in a chat conversation.
// Role is "user" or "assistant" in provider wire terms.
type Turn struct {
	Role    string
	Content string
}

// ChatStreamer is the interface for streaming chat completion.
// The returned stream yields text fragments in arrival order; the consumer
// concatenates them and must call Close when done.
type ChatStreamer interface {
	ChatStream(ctx context.Context, system string, turns []Turn) (*Stream, error)
	GetModel() string
}

// Client is the full provider surface: completion plus streaming chat.
type Client interface {
	TextGenerator
	ChatStreamer
}

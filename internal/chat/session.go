// Package chat maintains a conversation transcript grounded in the user's
// memos and streams assistant responses into it.
package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/memobook/memobook/internal/llm"
	"github.com/memobook/memobook/pkg/types"
)

const (
	// welcomeText seeds every new session's transcript.
	welcomeText = "Hi! I have read your memos. Ask me anything about them or let me summarize your recent thoughts."

	// apologyText is appended as a fresh model message when a response
	// stream fails. The partially streamed message is left intact.
	apologyText = "Sorry, I encountered an error analyzing your memos."

	// maxContextMemos caps how many recent memos are embedded into the
	// system instruction.
	maxContextMemos = 50

	// contextDelimiter separates memo entries in the context block.
	contextDelimiter = "\n---\n"
)

var (
	// ErrEmptyMessage is returned when Send is called with empty or
	// whitespace-only text. The transcript is not modified.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned when a Send is already in flight. The rejected
	// call is a no-op, not queued.
	ErrBusy = errors.New("another send is in flight")
)

// MemoLister supplies the memo snapshot used to build the context window.
// The store's List satisfies it: newest-first order.
type MemoLister interface {
	List() []*types.Memo
}

// Session is a linear conversation over the user's memo history.
//
// At most one Send is in flight at a time, enforced by an explicit guard.
// Streamed fragments are applied to the transcript strictly in arrival
// order. All methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	transcript []*types.ChatMessage
	inFlight   bool

	memos    MemoLister
	streamer llm.ChatStreamer
}

// NewSession creates a session seeded with the fixed welcome message.
func NewSession(memos MemoLister, streamer llm.ChatStreamer) *Session {
	return &Session{
		transcript: []*types.ChatMessage{
			{ID: "welcome", Role: types.RoleModel, Text: welcomeText},
		},
		memos:    memos,
		streamer: streamer,
	}
}

// Transcript returns a copy of the current transcript in order.
func (s *Session) Transcript() []*types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.ChatMessage, len(s.transcript))
	for i, m := range s.transcript {
		out[i] = m.Clone()
	}
	return out
}

// InFlight reports whether a send is currently outstanding.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Send submits a user turn and streams the model's response into the
// transcript. It blocks until the stream ends or fails; callers that need
// asynchrony run it in a goroutine.
//
// The user message is appended before any network activity, so the
// transcript reflects user intent even if the call fails. A send with
// empty/whitespace text returns ErrEmptyMessage; a send while another is
// outstanding returns ErrBusy. Both leave the transcript unchanged.
//
// onUpdate, if non-nil, is invoked with a copy of each transcript message
// as it is appended or grows, in order. It is called without the session
// lock held.
func (s *Session) Send(ctx context.Context, userText string, onUpdate func(types.ChatMessage)) error {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inFlight = true

	userMsg := &types.ChatMessage{ID: uuid.NewString(), Role: types.RoleUser, Text: userText}
	s.transcript = append(s.transcript, userMsg)

	// Snapshot the turns for the request: full prior transcript plus the
	// new user message, mapped to provider wire roles.
	turns := make([]llm.Turn, 0, len(s.transcript))
	for _, m := range s.transcript {
		role := "user"
		if m.Role == types.RoleModel {
			role = "assistant"
		}
		turns = append(turns, llm.Turn{Role: role, Content: m.Text})
	}
	s.mu.Unlock()

	notify(onUpdate, userMsg)

	system := llm.SystemInstruction(buildMemoContext(s.memos.List()))

	stream, err := s.streamer.ChatStream(ctx, system, turns)
	if err != nil {
		s.appendApology(onUpdate)
		return err
	}
	defer stream.Close()

	// Empty placeholder for the streaming response; its text grows
	// append-only as fragments arrive.
	modelMsg := &types.ChatMessage{ID: uuid.NewString(), Role: types.RoleModel, IsThinking: true}
	s.mu.Lock()
	s.transcript = append(s.transcript, modelMsg)
	s.mu.Unlock()
	notify(onUpdate, modelMsg)

	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Leave the partial text intact and surface a separate
			// apology message.
			s.mu.Lock()
			modelMsg.IsThinking = false
			s.mu.Unlock()
			notify(onUpdate, modelMsg)
			s.appendApology(onUpdate)
			return err
		}

		s.mu.Lock()
		modelMsg.Text += frag
		s.mu.Unlock()
		notify(onUpdate, modelMsg)
	}

	s.mu.Lock()
	modelMsg.IsThinking = false
	s.inFlight = false
	s.mu.Unlock()
	notify(onUpdate, modelMsg)
	return nil
}

// appendApology records a stream failure as a new model message and clears
// the in-flight guard so the next Send can proceed.
func (s *Session) appendApology(onUpdate func(types.ChatMessage)) {
	msg := &types.ChatMessage{ID: uuid.NewString(), Role: types.RoleModel, Text: apologyText}

	s.mu.Lock()
	s.transcript = append(s.transcript, msg)
	s.inFlight = false
	s.mu.Unlock()

	notify(onUpdate, msg)
}

// buildMemoContext formats up to maxContextMemos of the newest memos as
// dated content lines joined by the delimiter. memos must be newest-first,
// which is the store's canonical order.
func buildMemoContext(memos []*types.Memo) string {
	if len(memos) > maxContextMemos {
		memos = memos[:maxContextMemos]
	}

	lines := make([]string, len(memos))
	for i, m := range memos {
		lines[i] = "[" + m.CreatedAt.Format("2006-01-02") + "] " + m.Content
	}
	return strings.Join(lines, contextDelimiter)
}

// notify invokes the update callback with a copy of msg, if set.
func notify(onUpdate func(types.ChatMessage), msg *types.ChatMessage) {
	if onUpdate != nil {
		onUpdate(*msg)
	}
}

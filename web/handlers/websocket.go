package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket" //nolint:staticcheck // TODO: migrate to github.com/coder/websocket
	"nhooyr.io/websocket/wsjson"

	"github.com/memobook/memobook/internal/chat"
	"github.com/memobook/memobook/pkg/types"
)

// writeTimeout bounds each individual WebSocket write.
const writeTimeout = 10 * time.Second

// ChatEvent is the server-to-client message envelope.
// Type is "transcript" (full history, sent once on connect), "message"
// (a single transcript message that was appended or grew), or "error".
type ChatEvent struct {
	Type     string               `json:"type"`
	Messages []*types.ChatMessage `json:"messages,omitempty"`
	Message  *types.ChatMessage   `json:"message,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// ChatInbound is the client-to-server message: the user's chat text.
type ChatInbound struct {
	Text string `json:"text"`
}

// ChatHandler serves the /ws/chat endpoint. Each connection shares the
// single chat session, so a send in flight on one connection rejects
// sends from all others.
type ChatHandler struct {
	session *chat.Session
}

// NewChatHandler creates a ChatHandler over the given session.
func NewChatHandler(session *chat.Session) *ChatHandler {
	return &ChatHandler{session: session}
}

// ServeHTTP upgrades the connection, replays the transcript, then relays
// user messages into the session and streams updates back.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil) //nolint:staticcheck // TODO: migrate to github.com/coder/websocket
	if err != nil {
		log.Printf("ERROR: WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "") //nolint:staticcheck

	ctx := r.Context()
	cw := &chatConn{conn: conn}

	if err := cw.write(ctx, ChatEvent{Type: "transcript", Messages: h.session.Transcript()}); err != nil {
		return
	}

	for {
		var in ChatInbound
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			// Connection closed.
			return
		}
		// Send blocks for the whole stream; run it off the read loop so the
		// connection stays responsive. A concurrent send is rejected by the
		// session's guard and reported as an error event.
		go h.relay(ctx, cw, in.Text)
	}
}

// relay runs one session send, forwarding every transcript update to the
// client as a message event.
func (h *ChatHandler) relay(ctx context.Context, cw *chatConn, text string) {
	err := h.session.Send(ctx, text, func(m types.ChatMessage) {
		if werr := cw.write(ctx, ChatEvent{Type: "message", Message: &m}); werr != nil {
			log.Printf("chat: websocket write failed: %v", werr)
		}
	})
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		_ = cw.write(ctx, ChatEvent{Type: "error", Error: "message is empty"})
	case errors.Is(err, chat.ErrBusy):
		_ = cw.write(ctx, ChatEvent{Type: "error", Error: "a response is already in progress"})
	default:
		// The session already appended the apology message and pushed it
		// through onUpdate; nothing more to tell the client.
		log.Printf("chat: send failed: %v", err)
	}
}

// chatConn serializes writes to a WebSocket connection. The read loop and
// the relay goroutine both write, and nhooyr.io/websocket allows only one
// concurrent writer.
type chatConn struct {
	mu   sync.Mutex
	conn *websocket.Conn //nolint:staticcheck // TODO: migrate to github.com/coder/websocket
}

func (c *chatConn) write(ctx context.Context, ev ChatEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(wctx, c.conn, ev)
}

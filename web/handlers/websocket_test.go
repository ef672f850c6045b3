package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket" //nolint:staticcheck // TODO: migrate to github.com/coder/websocket
	"nhooyr.io/websocket/wsjson"

	"github.com/memobook/memobook/internal/chat"
	"github.com/memobook/memobook/internal/llm"
	"github.com/memobook/memobook/internal/store"
	"github.com/memobook/memobook/pkg/types"
)

// scriptedStreamer yields fixed fragments then finalErr. connectErr, if
// set, fails the call before any stream exists.
type scriptedStreamer struct {
	fragments  []string
	finalErr   error
	connectErr error

	mu    sync.Mutex
	calls int
}

func (f *scriptedStreamer) ChatStream(context.Context, string, []llm.Turn) (*llm.Stream, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.connectErr != nil {
		return nil, f.connectErr
	}

	i := 0
	recv := func() (string, error) {
		if i < len(f.fragments) {
			frag := f.fragments[i]
			i++
			return frag, nil
		}
		return "", f.finalErr
	}
	return llm.NewStream(recv, func() error { return nil }), nil
}

func (f *scriptedStreamer) GetModel() string { return "scripted" }

func dialChat(t *testing.T, streamer llm.ChatStreamer) (*websocket.Conn, context.Context) { //nolint:staticcheck
	t.Helper()

	session := chat.NewSession(store.New(newMemKV()), streamer)
	srv := httptest.NewServer(NewChatHandler(session))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, srv.URL, nil) //nolint:staticcheck
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") }) //nolint:staticcheck
	return conn, ctx
}

func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn) ChatEvent { //nolint:staticcheck
	t.Helper()

	var ev ChatEvent
	require.NoError(t, wsjson.Read(ctx, conn, &ev))
	return ev
}

func TestChatReplaysTranscriptOnConnect(t *testing.T) {
	conn, ctx := dialChat(t, &scriptedStreamer{finalErr: io.EOF})

	ev := readEvent(t, ctx, conn)
	assert.Equal(t, "transcript", ev.Type)
	require.Len(t, ev.Messages, 1)
	assert.Equal(t, types.RoleModel, ev.Messages[0].Role)
	assert.Contains(t, ev.Messages[0].Text, "read your memos")
}

func TestChatStreamsResponseMessages(t *testing.T) {
	conn, ctx := dialChat(t, &scriptedStreamer{fragments: []string{"Hel", "lo", "!"}, finalErr: io.EOF})

	readEvent(t, ctx, conn) // transcript
	require.NoError(t, wsjson.Write(ctx, conn, ChatInbound{Text: "hi"}))

	// First update echoes the user turn.
	ev := readEvent(t, ctx, conn)
	require.Equal(t, "message", ev.Type)
	assert.Equal(t, types.RoleUser, ev.Message.Role)
	assert.Equal(t, "hi", ev.Message.Text)

	// Then the model message grows fragment by fragment until done.
	var final *types.ChatMessage
	for {
		ev = readEvent(t, ctx, conn)
		require.Equal(t, "message", ev.Type)
		require.Equal(t, types.RoleModel, ev.Message.Role)
		if !ev.Message.IsThinking {
			final = ev.Message
			break
		}
	}
	assert.Equal(t, "Hello!", final.Text)
}

func TestChatEmptyMessageYieldsErrorEvent(t *testing.T) {
	conn, ctx := dialChat(t, &scriptedStreamer{finalErr: io.EOF})

	readEvent(t, ctx, conn) // transcript
	require.NoError(t, wsjson.Write(ctx, conn, ChatInbound{Text: "   "}))

	ev := readEvent(t, ctx, conn)
	assert.Equal(t, "error", ev.Type)
	assert.NotEmpty(t, ev.Error)
}

func TestChatConnectFailureStreamsApology(t *testing.T) {
	conn, ctx := dialChat(t, &scriptedStreamer{connectErr: io.ErrUnexpectedEOF})

	readEvent(t, ctx, conn) // transcript
	require.NoError(t, wsjson.Write(ctx, conn, ChatInbound{Text: "question"}))

	readEvent(t, ctx, conn) // user turn echo
	ev := readEvent(t, ctx, conn)
	require.Equal(t, "message", ev.Type)
	assert.Equal(t, types.RoleModel, ev.Message.Role)
	assert.Contains(t, ev.Message.Text, "Sorry, I encountered an error")
}

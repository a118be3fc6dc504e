package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"core-nexus/internal/assistant"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dialChat(t *testing.T, a *assistant.Assistant) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ws/assistant", func(c *gin.Context) {
		ChatHandler(c, a, zap.NewNop().Sugar())
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/assistant"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ChatMessage {
	t.Helper()
	var msg ChatMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestChatGreetsOnConnect(t *testing.T) {
	a := assistant.New(context.Background(), "", "", zap.NewNop().Sugar())
	conn := dialChat(t, a)

	greeting := readFrame(t, conn)
	assert.Equal(t, "reply", greeting.Type)
	// An offline assistant greets with the offline string.
	assert.Equal(t, assistant.OfflineMessage, greeting.Data)
}

func TestChatMessageGetsTypingThenReply(t *testing.T) {
	a := assistant.New(context.Background(), "", "", zap.NewNop().Sugar())
	conn := dialChat(t, a)

	readFrame(t, conn) // greeting

	require.NoError(t, conn.WriteJSON(ChatMessage{Type: "message", Data: "what bots do you have?"}))

	typing := readFrame(t, conn)
	assert.Equal(t, "typing", typing.Type)

	reply := readFrame(t, conn)
	assert.Equal(t, "reply", reply.Type)
	assert.Equal(t, assistant.OfflineMessage, reply.Data)
}

func TestChatSkipsEmptyAndUnknownFrames(t *testing.T) {
	a := assistant.New(context.Background(), "", "", zap.NewNop().Sugar())
	conn := dialChat(t, a)

	readFrame(t, conn) // greeting

	// Neither of these should produce a response frame.
	require.NoError(t, conn.WriteJSON(ChatMessage{Type: "noise", Data: "ignored"}))
	require.NoError(t, conn.WriteJSON(ChatMessage{Type: "message", Data: "   "}))

	// The next frames on the wire belong to this prompt.
	require.NoError(t, conn.WriteJSON(ChatMessage{Type: "message", Data: "hello"}))

	typing := readFrame(t, conn)
	assert.Equal(t, "typing", typing.Type)

	reply := readFrame(t, conn)
	assert.Equal(t, "reply", reply.Type)
	assert.Equal(t, assistant.OfflineMessage, reply.Data)
}

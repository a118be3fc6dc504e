package websocket

import (
	"net/http"
	"strings"

	"core-nexus/internal/assistant"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the widget is served from the same origin; CORS covers the rest
	},
}

// ChatMessage is the frame format of the assistant widget. Client
// sends {type:"message", data:<prompt>}; server answers with a
// "typing" frame followed by a "reply" frame.
type ChatMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

// ChatHandler upgrades the connection and runs the chat loop until the
// client goes away.
func ChatHandler(c *gin.Context, a *assistant.Assistant, sugar *zap.SugaredLogger) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sugar.Warnw("assistant ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	greeting := "Hey, I'm Nexus. Ask me anything about the CORE DEVS bots."
	if !a.Online() {
		greeting = assistant.OfflineMessage
	}
	if err := conn.WriteJSON(ChatMessage{Type: "reply", Data: greeting}); err != nil {
		return
	}

	for {
		var msg ChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sugar.Debugw("assistant ws closed", "error", err)
			}
			return
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Data) == "" {
			continue
		}

		if err := conn.WriteJSON(ChatMessage{Type: "typing"}); err != nil {
			return
		}

		reply := a.Respond(c.Request.Context(), msg.Data)
		if err := conn.WriteJSON(ChatMessage{Type: "reply", Data: reply}); err != nil {
			return
		}
	}
}

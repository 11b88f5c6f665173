package live

import (
	"encoding/json"

	"auditservice/internal/models"

	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// Frame types written to subscribers.
const (
	FrameEvent = "event"
	FrameInfo  = "info"
	FrameError = "error"
)

// Frame is one websocket text message. Event frames carry Data, status
// frames carry Message.
type Frame struct {
	Type    string             `json:"type"`
	Message string             `json:"message,omitempty"`
	Data    *models.AuditEvent `json:"data,omitempty"`
}

// upgrader accepts any origin; the tail is read-only and carries the same
// data as the listing endpoint.
var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true
	},
}

func writeFrame(conn *websocket.Conn, f Frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func writeStatus(conn *websocket.Conn, typ, message string) error {
	return writeFrame(conn, Frame{Type: typ, Message: message})
}

func writeEvent(conn *websocket.Conn, evt models.AuditEvent) error {
	return writeFrame(conn, Frame{Type: FrameEvent, Data: &evt})
}

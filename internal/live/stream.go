package live

import (
	"errors"
	"log/slog"

	"auditservice/internal/errmsg"
	"auditservice/internal/query"
	"auditservice/internal/utils"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/valyala/fasthttp"
)

type Handler struct {
	Hub    *Hub
	Logger *slog.Logger
}

func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Hub: hub, Logger: logger}
}

func Routes(app fiber.Router, h *Handler) {
	app.Get("/ws/audit_events", h.StreamHandler)
}

var errNoRequestCtx = errors.New("fiber context does not expose the fasthttp request")

// StreamHandler upgrades the connection and streams new audit events.
// @Summary Live tail of new audit events
// @Description Upgrades to a websocket and pushes every newly persisted event matching the filters as {"type":"event","data":{...}}. Nothing is replayed.
// @Tags Audit Events
// @Param entity_id query string false "Entity identifier"
// @Param entity_type query string false "Entity type" Enums(client, invoice, system)
// @Param event_type query string false "Event type, e.g. client.created"
// @Param status query string false "Outcome" Enums(success, failed)
// @Failure 422 {object} errmsg._AuditEventInvalidQuery
// @Failure 426 {object} utils.ErrorResponse
// @Failure 503 {object} errmsg._LiveTailClosed
// @Router /ws/audit_events [get]
func (h *Handler) StreamHandler(c fiber.Ctx) error {
	filter, err := query.Compose(query.Params{
		EntityID:   c.Query("entity_id"),
		EntityType: c.Query("entity_type"),
		EventType:  c.Query("event_type"),
		Status:     c.Query("status"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	})
	if err != nil {
		var ve *errmsg.ValidationError
		if errors.As(err, &ve) {
			return utils.ValidationError(c, errmsg.AuditEventInvalidQuery, ve)
		}
		return err
	}

	rc, err := requestCtx(c)
	if err != nil {
		return err
	}

	if !websocket.FastHTTPIsWebSocketUpgrade(rc) {
		return fiber.NewError(fiber.StatusUpgradeRequired, "expected a websocket upgrade")
	}

	sub, err := h.Hub.Subscribe(filter)
	if err != nil {
		return utils.StatusError(c, errmsg.LiveTailClosed)
	}

	log := h.Logger.With("request_id", requestid.FromContext(c))

	err = upgrader.Upgrade(rc, func(conn *websocket.Conn) {
		defer conn.Close()
		defer sub.Cancel()

		log.Debug("live tail opened", "remote", conn.RemoteAddr().String())
		h.stream(conn, sub, log)
		log.Debug("live tail closed")
	})
	if err != nil {
		sub.Cancel()
		return err
	}
	return nil
}

func (h *Handler) stream(conn *websocket.Conn, sub *Subscription, log *slog.Logger) {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeStatus(conn, FrameInfo, "subscribed"); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case evt, ok := <-sub.Events():
			if !ok {
				_ = writeStatus(conn, FrameInfo, "live tail ended")
				return
			}
			if err := writeEvent(conn, evt); err != nil {
				log.Debug("live tail write failed", "error", err)
				return
			}
		}
	}
}

func requestCtx(c fiber.Ctx) (*fasthttp.RequestCtx, error) {
	type requestCtxProvider interface {
		RequestCtx() *fasthttp.RequestCtx
	}

	provider, ok := any(c).(requestCtxProvider)
	if !ok {
		return nil, errNoRequestCtx
	}
	return provider.RequestCtx(), nil
}

package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
	"github.com/omnia-labs/omnia-api/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type EventBroker interface {
	Subscribe(ctx context.Context, accountID string) (*service.Subscription, error)
	Unsubscribe(ctx context.Context, sub *service.Subscription)
}

type EventsHandler struct {
	broker   EventBroker
	upgrader websocket.Upgrader
}

// NewEventsHandler accepts websocket upgrades from the given origins. An
// empty list or "*" accepts any origin.
func NewEventsHandler(broker EventBroker, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// HandleEvents godoc
// @Summary      Stream state change events
// @Description  Upgrades to a websocket that receives one JSON event per committed state change of the session's account. The token may be passed as a query parameter.
// @Tags         events
// @Param        token  query     string  false  "session token"
// @Success      101    {object}  domain.StateEvent
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventsHandler) HandleEvents(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already replied to the client.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	sub, err := h.broker.Subscribe(ctx.Request.Context(), accountID)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"))
		conn.Close()
		return
	}

	done := make(chan struct{})
	go h.writePump(conn, sub, done)
	go h.readPump(conn, sub, done)
}

func (h *EventsHandler) writePump(conn *websocket.Conn, sub *service.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case evt, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readPump only watches for the close frame; clients send nothing.
func (h *EventsHandler) readPump(conn *websocket.Conn, sub *service.Subscription, done chan<- struct{}) {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		h.broker.Unsubscribe(ctx, sub)
		cancel()
		close(done)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("websocket closed", zap.String("account_id", sub.AccountID), zap.Error(err))
			}
			return
		}
	}
}

// Package socket pushes board events to websocket listeners
package socket

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/dogechoco/messageboard/core"
)

var tracer = otel.Tracer("socket")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler is the interface for handling websocket
type Handler interface {
	Connect(c echo.Context) error
	CurrentConnectionCount() int64
}

type handler struct {
	service     core.SocketService
	connections atomic.Int64
}

// NewHandler creates a new handler
func NewHandler(service core.SocketService) Handler {
	return &handler{service: service}
}

func (h *handler) CurrentConnectionCount() int64 {
	return h.connections.Load()
}

// Connect upgrades the request and forwards every event until the peer leaves
func (h *handler) Connect(c echo.Context) error {
	ctx := c.Request().Context()

	events, release, err := h.service.Subscribe(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe", slog.String("error", err.Error()))
		return c.JSON(http.StatusServiceUnavailable, core.NewErrorResponse(err))
	}
	defer release()

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade websocket", slog.String("error", err.Error()))
		return nil
	}
	defer ws.Close()

	h.connections.Add(1)
	defer h.connections.Add(-1)

	// the peer never sends anything; reading only detects its departure
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(ctx, "failed to write event", slog.String("error", err.Error()))
				return nil
			}
		}
	}
}

// Package message stores the signed messages of the board
package message

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/dogechoco/messageboard/core"
)

var tracer = otel.Tracer("message")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Post(c echo.Context) error
	List(c echo.Context) error
}

type handler struct {
	service core.MessageService
}

// NewHandler creates a new handler
func NewHandler(service core.MessageService) Handler {
	return &handler{service: service}
}

// Post stores a signed message
// Input: core.SendMessageRequest
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Message.Handler.Post")
	defer span.End()

	var request core.SendMessageRequest
	err := c.Bind(&request)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, core.NewErrorResponse(err))
	}

	created, err := h.service.Post(ctx, request)
	if err != nil {
		span.RecordError(err)
		var badRequest core.ErrorBadRequest
		if errors.As(err, &badRequest) {
			return c.JSON(http.StatusBadRequest, core.NewErrorResponse(err))
		}
		if errors.Is(err, core.ErrorAlreadyExists{}) {
			return c.JSON(http.StatusConflict, core.NewErrorResponse(err))
		}
		return c.JSON(http.StatusInternalServerError, core.NewErrorResponse(err))
	}

	return c.JSON(http.StatusCreated, core.NewOKResponse(created.Public()))
}

// List returns every message oldest first, as a bare array
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Message.Handler.List")
	defer span.End()

	messages, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, core.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, messages)
}

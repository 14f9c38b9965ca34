// Package admin serves the message export reserved to the admin wallet
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/dogechoco/messageboard/core"
)

var tracer = otel.Tracer("admin")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Export(c echo.Context) error
}

type handler struct {
	service core.AdminService
}

// NewHandler creates a new handler
func NewHandler(service core.AdminService) Handler {
	return &handler{service: service}
}

// Export sends the message file when the signature is an admin token
// Input: core.AdminExportRequest
func (h handler) Export(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Admin.Handler.Export")
	defer span.End()

	var request core.AdminExportRequest
	err := c.Bind(&request)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, core.NewErrorResponse(err))
	}

	data, err := h.service.Export(ctx, request.Signature)
	if err != nil {
		if errors.Is(err, core.ErrorPermissionDenied{}) {
			return c.JSON(http.StatusUnauthorized, core.NewErrorResponse(err))
		}
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, core.NewErrorResponse(err))
	}

	filename := fmt.Sprintf("%s%s.json", core.ExportFilePrefix, time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

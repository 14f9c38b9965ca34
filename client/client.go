//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dogechoco/messageboard/core"
)

const (
	defaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("client")

// Client talks to the message board backend.
type Client interface {
	SendMessage(ctx context.Context, request core.SendMessageRequest) error
	GetMessages(ctx context.Context) ([]core.Message, error)
	DownloadMessages(ctx context.Context, signature string) ([]byte, error)
	Subscribe(ctx context.Context, onEvent func(core.Event)) error
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

type client struct {
	endpoint   string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

type Option func(*client)

// WithTimeout overrides the per request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

func NewClient(endpoint string, opts ...Option) Client {
	if endpoint == "" {
		endpoint = core.DefaultEndpoint
	}
	c := &client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		dialer: websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) SendMessage(ctx context.Context, request core.SendMessageRequest) error {
	ctx, span := tracer.Start(ctx, "Client.SendMessage")
	defer span.End()

	resp, err := c.postJSON(ctx, core.SendMessagePath, request)
	if err != nil {
		span.RecordError(err)
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func (c *client) GetMessages(ctx context.Context) ([]core.Message, error) {
	ctx, span := tracer.Start(ctx, "Client.GetMessages")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+core.MessagesPath, nil)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to fetch messages")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		span.RecordError(err)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var messages []core.Message
	err = json.Unmarshal(body, &messages)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to decode messages")
	}

	return messages, nil
}

func (c *client) DownloadMessages(ctx context.Context, signature string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Client.DownloadMessages")
	defer span.End()

	resp, err := c.postJSON(ctx, core.AdminExportPath, core.AdminExportRequest{Signature: signature})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

// Subscribe blocks delivering backend events to onEvent until ctx is done
// or the connection drops.
func (c *client) Subscribe(ctx context.Context, onEvent func(core.Event)) error {
	ctx, span := tracer.Start(ctx, "Client.Subscribe")
	defer span.End()

	u, err := url.Parse(c.endpoint + core.SocketPath)
	if err != nil {
		span.RecordError(err)
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to open socket")
	}
	defer conn.Close()

	stop := closeOnDone(ctx, conn)
	defer stop()

	for {
		var event core.Event
		err := conn.ReadJSON(&event)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			span.RecordError(err)
			return errors.Wrap(err, "socket closed")
		}
		onEvent(event)
	}
}

func (c *client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request to "+path+" failed")
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// closeOnDone closes c when ctx is done. The returned func stops watching
// and returns once the watcher has exited.
func closeOnDone(ctx context.Context, c io.Closer) func() {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}

// Package board holds the state behind the message board page: the wallet
// session, the draft being composed and the messages fetched from the backend.
package board

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"golang.org/x/exp/slices"

	"github.com/dogechoco/messageboard/client"
	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/wallet"
)

var tracer = otel.Tracer("board")

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNotConnected = errors.New("wallet not connected")
	ErrNotAdmin     = errors.New("connected wallet is not the admin")
	ErrUnauthorized = errors.New("backend refused the export")
)

const (
	AlertEmptyMessage   = "Write a message first."
	AlertNotConnected   = "Connect your wallet first."
	AlertConnectFailed  = "Could not connect the wallet."
	AlertSent           = "Message signed and sent successfully."
	AlertSendFailed     = "Error sending the message."
	AlertSignFailed     = "Signature cancelled or wallet error."
	AlertUnauthorized   = "Not authorized to download messages."
	AlertExportFailed   = "Signature cancelled or error."
	AlertExportComplete = "Messages saved to "
)

// State is the visible mode of the page.
type State int

const (
	Disconnected State = iota
	Connected
	ConnectedAdmin
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case ConnectedAdmin:
		return "admin"
	default:
		return "disconnected"
	}
}

// Notifier shows a blocking alert to the user.
type Notifier interface {
	Alert(message string)
}

type Options struct {
	AdminAddress string
	ExportDir    string
	Now          func() time.Time
}

type Board struct {
	client       client.Client
	notifier     Notifier
	adminAddress string
	exportDir    string
	now          func() time.Time

	mu       sync.Mutex
	signer   wallet.Signer
	draft    string
	messages []core.Message
}

func New(c client.Client, notifier Notifier, opts Options) *Board {
	if opts.AdminAddress == "" {
		opts.AdminAddress = core.DefaultAdminAddress
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Board{
		client:       c,
		notifier:     notifier,
		adminAddress: opts.AdminAddress,
		exportDir:    opts.ExportDir,
		now:          opts.Now,
	}
}

// Connect binds the board to the signer w yields.
func (b *Board) Connect(ctx context.Context, w wallet.Wallet) error {
	ctx, span := tracer.Start(ctx, "Board.Connect")
	defer span.End()

	signer, err := w.Connect(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "wallet connection failed", slog.String("wallet", w.Name()), slog.String("error", err.Error()))
		b.notifier.Alert(AlertConnectFailed)
		return err
	}

	b.mu.Lock()
	b.signer = signer
	b.mu.Unlock()

	slog.InfoContext(ctx, "wallet connected", slog.String("wallet", w.Name()), slog.String("address", signer.Address().Hex()))
	return nil
}

func (b *Board) Disconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signer = nil
}

// Address returns the connected address, or "" when disconnected.
func (b *Board) Address() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.signer == nil {
		return ""
	}
	return b.signer.Address().Hex()
}

// IsAdmin reports whether the connected address is the admin one.
// This only decides what is shown; the backend makes its own decision.
func (b *Board) IsAdmin() bool {
	return core.SameAddress(b.Address(), b.adminAddress)
}

func (b *Board) State() State {
	if b.Address() == "" {
		return Disconnected
	}
	if b.IsAdmin() {
		return ConnectedAdmin
	}
	return Connected
}

func (b *Board) SetDraft(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = text
}

func (b *Board) Draft() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

// Messages returns the last fetched list, most recent first.
func (b *Board) Messages() []core.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.messages)
}

// Submit signs the draft and posts it. On success the draft is cleared and
// the list fetched again.
func (b *Board) Submit(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Board.Submit")
	defer span.End()

	b.mu.Lock()
	draft := b.draft
	signer := b.signer
	b.mu.Unlock()

	if strings.TrimSpace(draft) == "" {
		b.notifier.Alert(AlertEmptyMessage)
		return ErrEmptyMessage
	}
	if signer == nil {
		b.notifier.Alert(AlertNotConnected)
		return ErrNotConnected
	}

	signature, err := signer.SignMessage(ctx, []byte(draft))
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "signing failed", slog.String("error", err.Error()))
		b.notifier.Alert(AlertSignFailed)
		return err
	}

	err = b.client.SendMessage(ctx, core.SendMessageRequest{
		WalletAddress: signer.Address().Hex(),
		Message:       draft,
		Signature:     wallet.EncodeSignature(signature),
	})
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "send failed", slog.String("error", err.Error()))
		var status *client.StatusError
		if errors.As(err, &status) {
			b.notifier.Alert(AlertSendFailed)
		} else {
			b.notifier.Alert(AlertSignFailed)
		}
		return err
	}

	b.mu.Lock()
	if b.draft == draft {
		b.draft = ""
	}
	b.mu.Unlock()

	b.Refresh(ctx)
	b.notifier.Alert(AlertSent)
	return nil
}

// Refresh replaces the list with the backend's, reversed. Failures are
// logged and keep the previous list.
func (b *Board) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Board.Refresh")
	defer span.End()

	messages, err := b.client.GetMessages(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to fetch messages", slog.String("error", err.Error()))
		return err
	}

	slices.Reverse(messages)

	b.mu.Lock()
	b.messages = messages
	b.mu.Unlock()
	return nil
}

// Export asks the backend for the full message file using the admin
// challenge signature and writes it to the export directory.
func (b *Board) Export(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "Board.Export")
	defer span.End()

	b.mu.Lock()
	signer := b.signer
	b.mu.Unlock()

	if signer == nil {
		b.notifier.Alert(AlertNotConnected)
		return "", ErrNotConnected
	}
	if !core.SameAddress(signer.Address().Hex(), b.adminAddress) {
		return "", ErrNotAdmin
	}

	signature, err := signer.SignMessage(ctx, []byte(core.AdminChallenge))
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "admin signing failed", slog.String("error", err.Error()))
		b.notifier.Alert(AlertExportFailed)
		return "", err
	}

	body, err := b.client.DownloadMessages(ctx, wallet.EncodeSignature(signature))
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "export request failed", slog.String("error", err.Error()))
		var status *client.StatusError
		if errors.As(err, &status) {
			b.notifier.Alert(AlertUnauthorized)
			return "", errors.Wrap(ErrUnauthorized, err.Error())
		}
		b.notifier.Alert(AlertExportFailed)
		return "", err
	}

	path, err := b.writeExport(body)
	if err != nil {
		span.RecordError(err)
		b.notifier.Alert(AlertExportFailed)
		return "", err
	}

	b.notifier.Alert(AlertExportComplete + path)
	return path, nil
}

// ExportFileName names the file for an export made at t.
func ExportFileName(t time.Time) string {
	return core.ExportFilePrefix + t.UTC().Format("2006-01-02") + ".json"
}

func (b *Board) writeExport(body []byte) (string, error) {
	err := os.MkdirAll(b.exportDir, 0o755)
	if err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	tmp, err := os.CreateTemp(b.exportDir, ".export-*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to write export")
	}

	path := filepath.Join(b.exportDir, ExportFileName(b.now()))
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return "", errors.Wrap(err, "failed to move export into place")
	}
	return path, nil
}

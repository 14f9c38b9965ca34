package board

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dogechoco/messageboard/client"
	"github.com/dogechoco/messageboard/client/mock"
	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/wallet"
)

const (
	AdminLower = "0x4794d0b88f5579117ca8e7ab8ff8b5f95dbd0213"
	User1      = "0x9b3A0f6C6e9a6C0f3b1f1e0a3E2D2c1B0a9f8E7d"
)

var ctx = context.Background()

type fakeSigner struct {
	address common.Address
	err     error
	signed  [][]byte
}

func (s *fakeSigner) Address() common.Address {
	return s.address
}

func (s *fakeSigner) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	s.signed = append(s.signed, message)
	if s.err != nil {
		return nil, s.err
	}
	sig := make([]byte, 65)
	sig[64] = 27
	return sig, nil
}

type fakeWallet struct {
	signer wallet.Signer
	err    error
}

func (w *fakeWallet) Name() string {
	return "fake"
}

func (w *fakeWallet) Connect(context.Context) (wallet.Signer, error) {
	return w.signer, w.err
}

type recordingNotifier struct {
	alerts []string
}

func (n *recordingNotifier) Alert(message string) {
	n.alerts = append(n.alerts, message)
}

func (n *recordingNotifier) last() string {
	if len(n.alerts) == 0 {
		return ""
	}
	return n.alerts[len(n.alerts)-1]
}

func setup(t *testing.T) (*Board, *mock_client.MockClient, *recordingNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockClient := mock_client.NewMockClient(ctrl)
	notifier := &recordingNotifier{}
	b := New(mockClient, notifier, Options{
		ExportDir: t.TempDir(),
		Now: func() time.Time {
			return time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
		},
	})
	return b, mockClient, notifier
}

func connect(t *testing.T, b *Board, address string) *fakeSigner {
	t.Helper()
	signer := &fakeSigner{address: common.HexToAddress(address)}
	err := b.Connect(ctx, &fakeWallet{signer: signer})
	if err != nil {
		t.Fatal(err)
	}
	return signer
}

func TestSubmitEmptyMessage(t *testing.T) {
	b, _, notifier := setup(t)
	connect(t, b, User1)

	for _, draft := range []string{"", "   ", "\n\t "} {
		b.SetDraft(draft)
		err := b.Submit(ctx)
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Equal(t, AlertEmptyMessage, notifier.last())
	}
}

func TestSubmitWithoutWallet(t *testing.T) {
	b, _, notifier := setup(t)

	b.SetDraft("hello")
	err := b.Submit(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, AlertNotConnected, notifier.last())
	assert.Equal(t, "hello", b.Draft())
}

func TestSubmitSuccess(t *testing.T) {
	b, mockClient, notifier := setup(t)
	signer := connect(t, b, User1)

	pivot := time.Now()
	gomock.InOrder(
		mockClient.EXPECT().SendMessage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req core.SendMessageRequest) error {
				assert.Equal(t, common.HexToAddress(User1).Hex(), req.WalletAddress)
				assert.Equal(t, " hello board ", req.Message)
				assert.Equal(t, "0x"+strings.Repeat("00", 64)+"1b", req.Signature)
				return nil
			},
		).Times(1),
		mockClient.EXPECT().GetMessages(gomock.Any()).Return([]core.Message{
			{WalletAddress: User1, Message: "old", Timestamp: pivot.Add(-time.Minute)},
			{WalletAddress: User1, Message: " hello board ", Timestamp: pivot},
		}, nil).Times(1),
	)

	b.SetDraft(" hello board ")
	err := b.Submit(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, "", b.Draft())
		assert.Equal(t, AlertSent, notifier.last())
		assert.Equal(t, [][]byte{[]byte(" hello board ")}, signer.signed)

		messages := b.Messages()
		assert.Len(t, messages, 2)
		assert.Equal(t, " hello board ", messages[0].Message)
		assert.Equal(t, "old", messages[1].Message)
	}
}

func TestSubmitNonOK(t *testing.T) {
	b, mockClient, notifier := setup(t)
	connect(t, b, User1)

	mockClient.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(&client.StatusError{Code: http.StatusInternalServerError})

	b.SetDraft("hello")
	err := b.Submit(ctx)
	assert.Error(t, err)
	assert.Equal(t, AlertSendFailed, notifier.last())
	assert.Equal(t, "hello", b.Draft())
}

func TestSubmitNetworkError(t *testing.T) {
	b, mockClient, notifier := setup(t)
	connect(t, b, User1)

	mockClient.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	b.SetDraft("hello")
	err := b.Submit(ctx)
	assert.Error(t, err)
	assert.Equal(t, AlertSignFailed, notifier.last())
}

func TestSubmitSignatureCancelled(t *testing.T) {
	b, _, notifier := setup(t)
	signer := connect(t, b, User1)
	signer.err = wallet.ErrRejected

	b.SetDraft("hello")
	err := b.Submit(ctx)
	assert.ErrorIs(t, err, wallet.ErrRejected)
	assert.Equal(t, AlertSignFailed, notifier.last())
	assert.Equal(t, "hello", b.Draft())
}

func TestRefreshReverses(t *testing.T) {
	b, mockClient, _ := setup(t)

	mockClient.EXPECT().GetMessages(gomock.Any()).Return([]core.Message{
		{Message: "1"}, {Message: "2"}, {Message: "3"},
	}, nil)

	err := b.Refresh(ctx)
	if assert.NoError(t, err) {
		messages := b.Messages()
		assert.Equal(t, "3", messages[0].Message)
		assert.Equal(t, "2", messages[1].Message)
		assert.Equal(t, "1", messages[2].Message)
	}
}

func TestRefreshFailureKeepsList(t *testing.T) {
	b, mockClient, notifier := setup(t)

	mockClient.EXPECT().GetMessages(gomock.Any()).Return([]core.Message{{Message: "kept"}}, nil)
	mockClient.EXPECT().GetMessages(gomock.Any()).Return(nil, errors.New("boom"))

	assert.NoError(t, b.Refresh(ctx))
	assert.Error(t, b.Refresh(ctx))
	assert.Len(t, b.Messages(), 1)
	assert.Empty(t, notifier.alerts)
}

func TestAdminGate(t *testing.T) {
	b, _, _ := setup(t)
	assert.Equal(t, Disconnected, b.State())
	assert.False(t, b.IsAdmin())

	connect(t, b, User1)
	assert.Equal(t, Connected, b.State())
	assert.False(t, b.IsAdmin())

	connect(t, b, AdminLower)
	assert.Equal(t, ConnectedAdmin, b.State())
	assert.True(t, b.IsAdmin())

	b.Disconnect()
	assert.Equal(t, Disconnected, b.State())
	assert.Equal(t, "", b.Address())
}

func TestAdminGateConfiguredAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := New(mock_client.NewMockClient(ctrl), &recordingNotifier{}, Options{AdminAddress: User1})

	connect(t, b, "0x9B3A0F6C6E9A6C0F3B1F1E0A3E2D2C1B0A9F8E7D")
	assert.True(t, b.IsAdmin())
}

func TestConnectFailure(t *testing.T) {
	b, _, notifier := setup(t)

	err := b.Connect(ctx, &fakeWallet{err: wallet.ErrNoProvider})
	assert.ErrorIs(t, err, wallet.ErrNoProvider)
	assert.Equal(t, AlertConnectFailed, notifier.last())
	assert.Equal(t, Disconnected, b.State())
}

func TestExport(t *testing.T) {
	b, mockClient, notifier := setup(t)
	signer := connect(t, b, AdminLower)

	mockClient.EXPECT().DownloadMessages(gomock.Any(), gomock.Any()).Return([]byte(`[{"message":"hi"}]`), nil)

	path, err := b.Export(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, "respaldo-mensajes-2024-03-09.json", filepath.Base(path))
		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, `[{"message":"hi"}]`, string(data))
		assert.Equal(t, [][]byte{[]byte(core.AdminChallenge)}, signer.signed)
		assert.Equal(t, AlertExportComplete+path, notifier.last())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	assert.Len(t, entries, 1)
}

func TestExportUnauthorized(t *testing.T) {
	b, mockClient, notifier := setup(t)
	connect(t, b, AdminLower)

	mockClient.EXPECT().DownloadMessages(gomock.Any(), gomock.Any()).Return(nil, &client.StatusError{Code: http.StatusUnauthorized})

	path, err := b.Export(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "", path)
	assert.Equal(t, AlertUnauthorized, notifier.last())

	entries, _ := os.ReadDir(b.exportDir)
	assert.Empty(t, entries)
}

func TestExportNotAdmin(t *testing.T) {
	b, _, notifier := setup(t)
	signer := connect(t, b, User1)

	_, err := b.Export(ctx)
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.Empty(t, signer.signed)
	assert.Empty(t, notifier.alerts)
}

func TestExportSignatureCancelled(t *testing.T) {
	b, _, notifier := setup(t)
	signer := connect(t, b, AdminLower)
	signer.err = wallet.ErrRejected

	_, err := b.Export(ctx)
	assert.ErrorIs(t, err, wallet.ErrRejected)
	assert.Equal(t, AlertExportFailed, notifier.last())
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "respaldo-mensajes-2025-12-31.json", ExportFileName(time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)))
}

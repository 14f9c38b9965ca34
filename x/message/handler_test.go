package message

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/core/mock"
)

func newPost(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, core.SendMessagePath, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockMessageService(ctrl)
	mockService.EXPECT().Post(gomock.Any(), core.SendMessageRequest{
		WalletAddress: User1Address,
		Message:       "hello",
		Signature:     User1Sig,
	}).Return(core.Message{ID: "id1", WalletAddress: User1Address, Message: "hello", Signature: "0xab12"}, nil)

	h := NewHandler(mockService)
	c, rec := newPost(`{"walletAddress":"` + User1Address + `","message":"hello","signature":"` + User1Sig + `"}`)

	err := h.Post(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp core.ResponseBase[core.Message]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "id1", resp.Content.ID)
		assert.Empty(t, resp.Content.Signature)
	}
}

func TestHandlerPostErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{core.NewErrorBadRequest("empty message"), http.StatusBadRequest},
		{core.NewErrorAlreadyExists(), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		ctrl := gomock.NewController(t)
		mockService := mock_core.NewMockMessageService(ctrl)
		mockService.EXPECT().Post(gomock.Any(), gomock.Any()).Return(core.Message{}, tc.err)

		h := NewHandler(mockService)
		c, rec := newPost(`{"walletAddress":"x","message":"y","signature":"z"}`)
		err := h.Post(c)
		assert.NoError(t, err)
		assert.Equal(t, tc.status, rec.Code)
		ctrl.Finish()
	}
}

func TestHandlerList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockMessageService(ctrl)
	mockService.EXPECT().List(gomock.Any()).Return([]core.Message{
		{ID: "a", Message: "first"},
		{ID: "b", Message: "second"},
	}, nil)

	h := NewHandler(mockService)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, core.MessagesPath, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusOK, rec.Code)
		var messages []core.Message
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
		assert.Equal(t, "first", messages[0].Message)
		assert.Equal(t, "second", messages[1].Message)
	}
}

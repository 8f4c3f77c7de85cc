package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api"
	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/entity"
	"github.com/Aryanbansal-05/Relayy-backend/internal/domain/repository/mock"
	ws "github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/websocket"
	"github.com/Aryanbansal-05/Relayy-backend/internal/usecase"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/errors"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/response"
)

type handlerFixture struct {
	handler  *ChatHandler
	chatRepo *mock.MockChatRepository
	userRepo *mock.MockUserRepository
	echo     *echo.Echo
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	ctrl := gomock.NewController(t)

	chatRepo := mock.NewMockChatRepository(ctrl)
	userRepo := mock.NewMockUserRepository(ctrl)
	productRepo := mock.NewMockProductRepository(ctrl)

	uc := usecase.NewChatUseCase(chatRepo, userRepo, productRepo, ws.NewManager())

	e := echo.New()
	e.Validator = api.NewValidator()

	return &handlerFixture{
		handler:  NewChatHandler(uc),
		chatRepo: chatRepo,
		userRepo: userRepo,
		echo:     e,
	}
}

func (f *handlerFixture) request(method, target, body, uid string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := f.echo.NewContext(req, rec)
	c.Set("uid", uid)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateChatValidationError(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.request(http.MethodPost, "/v1/chats", `{}`, "user-a", nil)
	require.NoError(t, f.handler.CreateChat(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "counterpartid is required", resp.Error.Message)
}

func TestGetChatByIDForbiddenEnvelope(t *testing.T) {
	f := newHandlerFixture(t)

	f.chatRepo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(&entity.Chat{
		ID:           "chat-1",
		Participants: []string{"user-a", "user-b"},
	}, nil)

	c, rec := f.request(http.MethodGet, "/v1/chats/chat-1", "", "intruder", map[string]string{"id": "chat-1"})
	require.NoError(t, f.handler.GetChatByID(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestSendMessageCreated(t *testing.T) {
	f := newHandlerFixture(t)

	chat := &entity.Chat{
		ID:           "chat-1",
		Participants: []string{"user-a", "user-b"},
	}
	f.chatRepo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(chat, nil)
	f.chatRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *entity.Chat) error {
			require.Len(t, c.Messages, 1)
			assert.Equal(t, "user-a", c.Messages[0].SenderID)
			return nil
		})

	c, rec := f.request(http.MethodPost, "/v1/chats/chat-1/messages",
		`{"text":"hello"}`, "user-a", map[string]string{"id": "chat-1"})
	require.NoError(t, f.handler.SendMessage(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hello", data["text"])
	assert.NotEmpty(t, data["id"])
}

func TestDeleteChatNotFoundEnvelope(t *testing.T) {
	f := newHandlerFixture(t)

	f.chatRepo.EXPECT().GetByID(gomock.Any(), "missing").
		Return(nil, errors.NotFound("Chat", nil))

	c, rec := f.request(http.MethodDelete, "/v1/chats/missing", "", "user-a", map[string]string{"id": "missing"})
	require.NoError(t, f.handler.DeleteChat(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestMarkChatAsReadSuccessEnvelope(t *testing.T) {
	f := newHandlerFixture(t)

	f.chatRepo.EXPECT().GetByID(gomock.Any(), "chat-1").Return(&entity.Chat{
		ID:           "chat-1",
		Participants: []string{"user-a", "user-b"},
		Messages: []entity.Message{
			{ID: "msg-1", SenderID: "user-b", Text: "hi", Read: true},
		},
	}, nil)

	c, rec := f.request(http.MethodPut, "/v1/chats/chat-1/read", "", "user-a", map[string]string{"id": "chat-1"})
	require.NoError(t, f.handler.MarkChatAsRead(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

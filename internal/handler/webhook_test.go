package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/engine"
)

const testChannelSecret = "test-channel-secret"

// MockEventHandler is a mock implementation of the EventHandler interface.
type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, ev engine.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testChannelSecret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newRouter(events EventHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(testChannelSecret, events, zerolog.Nop())
	r := gin.New()
	r.POST("/callback", h.Callback)
	return r
}

func TestWebhookHandler_Callback(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedEvents []engine.Event
	}{
		{
			name: "text message",
			body: `{"events":[{"type":"message","replyToken":"rt1","source":{"userId":"U1"},"message":{"type":"text","text":"関東"}}]}`,
			expectedEvents: []engine.Event{
				{UserID: "U1", ReplyToken: "rt1", Type: engine.EventText, Text: "関東"},
			},
		},
		{
			name: "follow event",
			body: `{"events":[{"type":"follow","replyToken":"rt2","source":{"userId":"U2"}}]}`,
			expectedEvents: []engine.Event{
				{UserID: "U2", ReplyToken: "rt2", Type: engine.EventFollow},
			},
		},
		{
			name: "postback event",
			body: `{"events":[{"type":"postback","replyToken":"rt3","source":{"userId":"U3"},"postback":{"data":"action=register_location"}}]}`,
			expectedEvents: []engine.Event{
				{UserID: "U3", ReplyToken: "rt3", Type: engine.EventPostback, PostbackData: "action=register_location"},
			},
		},
		{
			name: "multiple events in one batch",
			body: `{"events":[{"type":"follow","replyToken":"rt4","source":{"userId":"U4"}},{"type":"message","replyToken":"rt5","source":{"userId":"U5"},"message":{"type":"text","text":"今日の天気"}}]}`,
			expectedEvents: []engine.Event{
				{UserID: "U4", ReplyToken: "rt4", Type: engine.EventFollow},
				{UserID: "U5", ReplyToken: "rt5", Type: engine.EventText, Text: "今日の天気"},
			},
		},
		{
			name:           "non-text message is ignored",
			body:           `{"events":[{"type":"message","replyToken":"rt6","source":{"userId":"U6"},"message":{"type":"sticker"}}]}`,
			expectedEvents: nil,
		},
		{
			name:           "unknown event type is ignored",
			body:           `{"events":[{"type":"unfollow","source":{"userId":"U7"}}]}`,
			expectedEvents: nil,
		},
		{
			name:           "missing user id is ignored",
			body:           `{"events":[{"type":"message","replyToken":"rt8","source":{},"message":{"type":"text","text":"hi"}}]}`,
			expectedEvents: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := new(MockEventHandler)
			for _, ev := range tt.expectedEvents {
				events.On("HandleEvent", mock.Anything, ev).Return(nil).Once()
			}

			r := newRouter(events)
			req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(tt.body))
			req.Header.Set("X-Line-Signature", sign(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			events.AssertExpectations(t)
		})
	}
}

func TestWebhookHandler_Callback_InvalidSignature(t *testing.T) {
	tests := []struct {
		name      string
		signature string
	}{
		{name: "missing header", signature: ""},
		{name: "not base64", signature: "%%%"},
		{name: "wrong digest", signature: base64.StdEncoding.EncodeToString([]byte("nope"))},
	}

	body := `{"events":[{"type":"follow","replyToken":"rt","source":{"userId":"U1"}}]}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := new(MockEventHandler)
			r := newRouter(events)

			req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
			req.Header.Set("X-Line-Signature", tt.signature)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			events.AssertNotCalled(t, "HandleEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestWebhookHandler_Callback_MalformedBody(t *testing.T) {
	events := new(MockEventHandler)
	r := newRouter(events)

	body := `{"events":[`
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", sign(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_Callback_HandlerErrorStillReturns200(t *testing.T) {
	events := new(MockEventHandler)
	events.On("HandleEvent", mock.Anything, mock.Anything).Return(assert.AnError)

	r := newRouter(events)
	body := `{"events":[{"type":"follow","replyToken":"rt","source":{"userId":"U1"}}]}`
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", sign(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// A non-200 would make LINE replay the whole batch.
	assert.Equal(t, http.StatusOK, w.Code)
}

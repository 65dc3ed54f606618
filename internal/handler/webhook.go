package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/engine"
)

// EventHandler processes one parsed webhook event.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev engine.Event) error
}

// WebhookHandler receives LINE Messaging API webhook calls.
type WebhookHandler struct {
	channelSecret string
	events        EventHandler
	logger        zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(channelSecret string, events EventHandler, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		channelSecret: channelSecret,
		events:        events,
		logger:        logger,
	}
}

// webhookRequest mirrors the Messaging API webhook body, limited to the
// event kinds the bot reacts to.
type webhookRequest struct {
	Events []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
	Postback struct {
		Data string `json:"data"`
	} `json:"postback"`
}

// Callback handles POST /callback requests.
func (h *WebhookHandler) Callback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if !h.validSignature(c.GetHeader("X-Line-Signature"), body) {
		h.logger.Warn().Msg("webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed webhook body"})
		return
	}

	for _, raw := range req.Events {
		ev, ok := parseEvent(raw)
		if !ok {
			continue
		}
		if err := h.events.HandleEvent(c.Request.Context(), ev); err != nil {
			// LINE retries the whole batch on non-200, which would replay
			// already-handled events, so log and keep going.
			h.logger.Error().Err(err).Str("user_id", ev.UserID).Msg("event handling failed")
		}
	}

	c.Status(http.StatusOK)
}

// validSignature checks the X-Line-Signature header: base64 of the
// HMAC-SHA256 of the raw body keyed with the channel secret.
func (h *WebhookHandler) validSignature(header string, body []byte) bool {
	expected, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.channelSecret))
	mac.Write(body)
	return hmac.Equal(expected, mac.Sum(nil))
}

func parseEvent(raw webhookEvent) (engine.Event, bool) {
	ev := engine.Event{
		UserID:     raw.Source.UserID,
		ReplyToken: raw.ReplyToken,
	}
	if ev.UserID == "" {
		return engine.Event{}, false
	}

	switch raw.Type {
	case "follow":
		ev.Type = engine.EventFollow
	case "postback":
		ev.Type = engine.EventPostback
		ev.PostbackData = raw.Postback.Data
	case "message":
		if raw.Message.Type != "text" {
			return engine.Event{}, false
		}
		ev.Type = engine.EventText
		ev.Text = raw.Message.Text
	default:
		return engine.Event{}, false
	}
	return ev, true
}

package line

// Message is any LINE message payload. Concrete types below marshal to the
// Messaging API JSON shapes.
type Message interface {
	message()
}

// TextMessage is a plain text message, optionally with quick-reply buttons.
type TextMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

func (TextMessage) message() {}

// FlexMessage wraps an arbitrary flex container.
type FlexMessage struct {
	Type     string `json:"type"`
	AltText  string `json:"altText"`
	Contents any    `json:"contents"`
}

func (FlexMessage) message() {}

// QuickReply is the tap-to-send button strip under a message.
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// QuickReplyItem is one button.
type QuickReplyItem struct {
	Type   string           `json:"type"`
	Action QuickReplyAction `json:"action"`
}

// QuickReplyAction sends the label back as a message when tapped.
type QuickReplyAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// maxQuickReplyItems is the Messaging API limit on quick-reply buttons.
const maxQuickReplyItems = 13

// NewTextMessage creates a plain text message.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// NewPromptMessage creates a text message with one quick-reply button per
// choice, truncated to the platform limit.
func NewPromptMessage(text string, choices []string) TextMessage {
	msg := NewTextMessage(text)
	if len(choices) == 0 {
		return msg
	}
	if len(choices) > maxQuickReplyItems {
		choices = choices[:maxQuickReplyItems]
	}
	items := make([]QuickReplyItem, len(choices))
	for i, c := range choices {
		items[i] = QuickReplyItem{
			Type:   "action",
			Action: QuickReplyAction{Type: "message", Label: c, Text: c},
		}
	}
	msg.QuickReply = &QuickReply{Items: items}
	return msg
}

// NewFlexMessage creates a flex message.
func NewFlexMessage(altText string, contents any) FlexMessage {
	return FlexMessage{Type: "flex", AltText: altText, Contents: contents}
}

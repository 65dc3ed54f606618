package engine

// EventType discriminates the closed set of inbound event kinds.
type EventType string

const (
	EventFollow   EventType = "follow"
	EventPostback EventType = "postback"
	EventText     EventType = "text"
)

// Postback action tokens sent by the rich menu.
const (
	PostbackRegister = "action=register_location"
	PostbackLookup   = "action=lookup_weather"
)

// Event is an inbound user event from the webhook transport.
type Event struct {
	UserID       string
	ReplyToken   string
	Type         EventType
	Text         string // EventText only
	PostbackData string // EventPostback only
}

package notifications

import "encoding/json"

// Realtime event types delivered over the notification socket.
const (
	EventMatchCreated    = "match_created"
	EventInquiryReceived = "inquiry_received"
	EventInquiryDecided  = "inquiry_decided"
	EventMessageReceived = "message_received"
	EventMessagesDropped = "messages_dropped"
)

// Event is the envelope written to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Encode marshals an event envelope.
func Encode(eventType string, payload any) ([]byte, error) {
	return json.Marshal(Event{Type: eventType, Payload: payload})
}

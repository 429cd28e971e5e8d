package ws

import "encoding/json"

// Event is the wire frame for all realtime traffic, in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client-to-server and server-to-client event names.
const (
	EventDirectMessage   = "directMessage"
	EventNewMessage      = "newMessage"
	EventJoinGroup       = "joinGroup"
	EventGroupMessage    = "groupMessage"
	EventNewGroupMessage = "newGroupMessage"
)

// DirectMessage asks the hub to deliver a message to one user.
type DirectMessage struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
}

// GroupMessage asks the hub to deliver a message to a group channel.
type GroupMessage struct {
	GroupID string `json:"groupId"`
	Message string `json:"message"`
}

// NewMessage is delivered to the recipient of a direct message.
type NewMessage struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

// NewGroupMessage is delivered to every group member except the sender.
type NewGroupMessage struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
	GroupID  string `json:"groupId"`
}

func marshalEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: raw})
}

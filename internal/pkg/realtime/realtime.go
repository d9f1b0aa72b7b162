package realtime

// Event is pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"room_id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage   = "new_message"
	EventTyping       = "typing"
	EventRead         = "read"
	EventNotification = "notification"
)

// Publisher delivers events to connected users. Delivery is best effort.
type Publisher interface {
	PublishToRoom(roomID string, event *Event)
	PublishToUser(userID int64, event *Event)
}

// Discard implements Publisher and drops everything.
type Discard struct{}

func (Discard) PublishToRoom(string, *Event) {}
func (Discard) PublishToUser(int64, *Event)  {}

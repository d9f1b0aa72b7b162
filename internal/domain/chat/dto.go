package chat

type StartConversationRequest struct {
	ParticipantID int64  `json:"participantId" validate:"required,gt=0"`
	HallID        *int64 `json:"hallId,omitempty" validate:"omitempty,gt=0"`
	Message       string `json:"message,omitempty" validate:"omitempty,max=4000"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// clientFrame is what a websocket client may send.
type clientFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

const maxMessageLen = 4000

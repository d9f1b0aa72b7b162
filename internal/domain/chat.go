package domain

import "time"

// Conversation is a direct thread between two users.
// ParticipantA always holds the smaller user id.
type Conversation struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	ParticipantA  int64     `json:"participant_a" gorm:"uniqueIndex:idx_conversation_pair;not null"`
	ParticipantB  int64     `json:"participant_b" gorm:"uniqueIndex:idx_conversation_pair;not null"`
	HallID        *int64    `json:"hall_id,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`

	LastMessage *Message `json:"last_message,omitempty" gorm:"-"`
	UnreadCount int      `json:"unread_count" gorm:"-"`
}

func (c *Conversation) Has(userID int64) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

func (c *Conversation) Other(userID int64) int64 {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

type Message struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	ConversationID string     `json:"conversation_id" gorm:"index;size:36;not null"`
	SenderID       int64      `json:"sender_id" gorm:"not null"`
	Content        string     `json:"content" gorm:"type:text;not null"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

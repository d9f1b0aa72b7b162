package chat

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrCannotChatSelf       = errors.New("cannot start chat with yourself")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmptyMessage         = errors.New("message content is empty")
)

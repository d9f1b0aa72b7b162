package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/realtime"
)

// Notifier stores an inbox entry for a message the recipient may not have seen.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, recipientID int64, conversationID string, senderID int64) error
}

// Service handles chat business logic
type Service struct {
	repo   *Repository
	push   realtime.Publisher
	notifs Notifier
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewService(repo *Repository, push realtime.Publisher, notifs Notifier, log logrus.FieldLogger) *Service {
	if push == nil {
		push = realtime.Discard{}
	}
	return &Service{repo: repo, push: push, notifs: notifs, log: log, now: time.Now}
}

// StartConversation returns the thread between the two users, creating it on first contact.
// An optional opening message is sent in the same call.
func (s *Service) StartConversation(ctx context.Context, userID int64, req StartConversationRequest) (*domain.Conversation, bool, error) {
	if userID == req.ParticipantID {
		return nil, false, ErrCannotChatSelf
	}
	ok, err := s.repo.UserExists(ctx, req.ParticipantID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrUserNotFound
	}

	a, b := userID, req.ParticipantID
	if a > b {
		a, b = b, a
	}

	conv, err := s.repo.FindByPair(ctx, a, b)
	if err != nil {
		return nil, false, err
	}
	created := false
	if conv == nil {
		now := s.now()
		conv = &domain.Conversation{
			ID:            uuid.New().String(),
			ParticipantA:  a,
			ParticipantB:  b,
			HallID:        req.HallID,
			LastMessageAt: now,
			CreatedAt:     now,
		}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			if !database.IsUniqueViolation(err) {
				return nil, false, err
			}
			// lost the race to the other participant
			if conv, err = s.repo.FindByPair(ctx, a, b); err != nil || conv == nil {
				return nil, false, ErrConversationNotFound
			}
		} else {
			created = true
		}
	}

	if strings.TrimSpace(req.Message) != "" {
		msg, err := s.SendMessage(ctx, userID, conv.ID, req.Message)
		if err != nil {
			return nil, false, err
		}
		conv.LastMessage = msg
		conv.LastMessageAt = msg.CreatedAt
	}
	return conv, created, nil
}

// ListConversations returns the user's threads, most recent first, with the last
// message and the count of unread messages from the other side.
func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		last, err := s.repo.LastMessage(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].LastMessage = last

		n, err := s.repo.CountUnread(ctx, list[i].ID, userID)
		if err != nil {
			return nil, err
		}
		list[i].UnreadCount = int(n)
	}
	return list, nil
}

func (s *Service) conversationFor(ctx context.Context, userID int64, conversationID string) (*domain.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Has(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

// Messages returns a page of the thread and marks what the reader received as read.
func (s *Service) Messages(ctx context.Context, userID int64, conversationID string, limit, offset int) ([]domain.Message, error) {
	if _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := s.repo.ListMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	if _, err := s.MarkRead(ctx, userID, conversationID); err != nil {
		s.log.WithError(err).WithField("conversation_id", conversationID).Warn("chat: mark read failed")
	}
	return list, nil
}

func (s *Service) SendMessage(ctx context.Context, senderID int64, conversationID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxMessageLen {
		return nil, ErrEmptyMessage
	}
	conv, err := s.conversationFor(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      s.now(),
	}
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.CreateMessage(ctx, msg); err != nil {
			return err
		}
		return tx.TouchConversation(ctx, conversationID, msg.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	s.push.PublishToRoom(conversationID, &realtime.Event{
		Type:    realtime.EventNewMessage,
		RoomID:  conversationID,
		Payload: msg,
	})
	if s.notifs != nil {
		if err := s.notifs.NotifyNewMessage(ctx, conv.Other(senderID), conversationID, senderID); err != nil {
			s.log.WithError(err).WithField("conversation_id", conversationID).Warn("chat: notify failed")
		}
	}
	return msg, nil
}

// MarkRead marks incoming messages read and tells the room.
func (s *Service) MarkRead(ctx context.Context, userID int64, conversationID string) (int64, error) {
	if _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return 0, err
	}
	n, err := s.repo.MarkRead(ctx, conversationID, userID, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.push.PublishToRoom(conversationID, &realtime.Event{
			Type:    realtime.EventRead,
			RoomID:  conversationID,
			Payload: map[string]int64{"user_id": userID},
		})
	}
	return n, nil
}

// RoomsFor lists conversation ids a websocket client is allowed to subscribe to.
func (s *Service) RoomsFor(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.ListIDsByUser(ctx, userID)
}

func (s *Service) CanJoin(ctx context.Context, userID int64, conversationID string) bool {
	_, err := s.conversationFor(ctx, userID, conversationID)
	return err == nil
}

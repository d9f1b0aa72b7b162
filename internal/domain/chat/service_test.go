package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/logger"
	"venuehub/internal/pkg/realtime"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyNewMessage(ctx context.Context, recipientID int64, conversationID string, senderID int64) error {
	return m.Called(ctx, recipientID, conversationID, senderID).Error(0)
}

type roomRecorder struct {
	mu     sync.Mutex
	events map[string][]*realtime.Event
}

func (r *roomRecorder) PublishToRoom(roomID string, e *realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string][]*realtime.Event{}
	}
	r.events[roomID] = append(r.events[roomID], e)
}

func (r *roomRecorder) PublishToUser(int64, *realtime.Event) {}

func seedUsers(t *testing.T, db *gorm.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, db.Create(&domain.User{
			ID:           id,
			Email:        "u" + itoa(id) + "@example.com",
			PasswordHash: "x",
			Role:         domain.RoleUser,
			Status:       domain.UserActive,
		}).Error)
	}
}

func newTestService(t *testing.T) (*Service, *roomRecorder, *mockNotifier) {
	db := database.OpenTest(t)
	seedUsers(t, db, 1, 2, 3)
	pub := &roomRecorder{}
	notifs := &mockNotifier{}
	svc := NewService(NewRepository(db), pub, notifs, logger.Discard())
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, pub, notifs
}

func TestStartConversation_ReusesThreadRegardlessOfOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, created, err := svc.StartConversation(ctx, 2, StartConversationRequest{ParticipantID: 1})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), first.ParticipantA)
	assert.Equal(t, int64(2), first.ParticipantB)

	again, created, err := svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 2})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
}

func TestStartConversation_Rejections(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 1})
	assert.ErrorIs(t, err, ErrCannotChatSelf)

	_, _, err = svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 99})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendMessage_PushesAndNotifiesRecipient(t *testing.T) {
	svc, pub, notifs := newTestService(t)
	ctx := context.Background()

	conv, _, err := svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 2})
	require.NoError(t, err)

	notifs.On("NotifyNewMessage", mock.Anything, int64(2), conv.ID, int64(1)).Return(nil).Once()

	msg, err := svc.SendMessage(ctx, 1, conv.ID, "  is the hall free in May?  ")
	require.NoError(t, err)
	assert.Equal(t, "is the hall free in May?", msg.Content)

	require.Len(t, pub.events[conv.ID], 1)
	assert.Equal(t, realtime.EventNewMessage, pub.events[conv.ID][0].Type)
	notifs.AssertExpectations(t)
}

func TestSendMessage_Rejections(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	conv, _, err := svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 2})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, 3, conv.ID, "hello")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.SendMessage(ctx, 1, conv.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(ctx, 1, "missing", "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestListConversations_UnreadAndLastMessage(t *testing.T) {
	svc, pub, notifs := newTestService(t)
	ctx := context.Background()
	notifs.On("NotifyNewMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	c12, _, err := svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 2, Message: "hi"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, 1, c12.ID, "are you there?")
	require.NoError(t, err)

	c23, _, err := svc.StartConversation(ctx, 3, StartConversationRequest{ParticipantID: 2, Message: "later thread"})
	require.NoError(t, err)

	list, err := svc.ListConversations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c23.ID, list[0].ID)
	assert.Equal(t, 1, list[0].UnreadCount)
	assert.Equal(t, 2, list[1].UnreadCount)
	require.NotNil(t, list[1].LastMessage)
	assert.Equal(t, "are you there?", list[1].LastMessage.Content)

	// reading the thread clears the counter and tells the room
	msgs, err := svc.Messages(ctx, 2, c12.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	list, err = svc.ListConversations(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, list[1].UnreadCount)
	last := pub.events[c12.ID][len(pub.events[c12.ID])-1]
	assert.Equal(t, realtime.EventRead, last.Type)

	// the sender's own messages never count as unread
	list, err = svc.ListConversations(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].UnreadCount)
}

func TestMessages_ForbiddenForOutsiders(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	conv, _, err := svc.StartConversation(ctx, 1, StartConversationRequest{ParticipantID: 2})
	require.NoError(t, err)

	_, err = svc.Messages(ctx, 3, conv.ID, 10, 0)
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.False(t, svc.CanJoin(ctx, 3, conv.ID))
	assert.True(t, svc.CanJoin(ctx, 2, conv.ID))
}

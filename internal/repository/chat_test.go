package repository

import (
	"testing"
	"time"

	"hackswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_ConversationFlow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)
	ctx := ctxWithTimeout(t)
	owner := createUser(t, db, "owner@example.com")
	member := createUser(t, db, "member@example.com")
	outsider := createUser(t, db, "outsider@example.com")

	conv := &models.Conversation{}
	require.NoError(t, repo.CreateConversation(ctx, conv, owner.ID, []string{member.ID}))

	ok, err := repo.IsParticipant(ctx, conv.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsParticipant(ctx, conv.ID, outsider.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	base := time.Now().Add(-time.Minute)
	first := &models.Message{ConversationID: conv.ID, SenderID: owner.ID, Content: "hi", CreatedAt: base}
	second := &models.Message{ConversationID: conv.ID, SenderID: member.ID, Content: "hello", CreatedAt: base.Add(time.Second)}
	require.NoError(t, repo.CreateMessage(ctx, first))
	require.NoError(t, repo.CreateMessage(ctx, second))

	messages, err := repo.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "hello", messages[1].Content)

	conversations, err := repo.ListConversationsForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)

	latest, err := repo.LatestMessages(ctx, []string{conv.ID})
	require.NoError(t, err)
	require.NotNil(t, latest[conv.ID])
	assert.Equal(t, second.ID, latest[conv.ID].ID)

	participants, err := repo.ParticipantUserIDs(ctx, []string{conv.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{owner.ID, member.ID}, participants[conv.ID])

	incoming, err := repo.RecentIncoming(ctx, owner.ID, time.Now().Add(-24*time.Hour), 2)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, second.ID, incoming[0].ID)

	none, err := repo.RecentIncoming(ctx, owner.ID, time.Now().Add(time.Hour), 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotificationRepository_ReadMarkers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := ctxWithTimeout(t)
	user := createUser(t, db, "reader@example.com")

	require.NoError(t, repo.MarkRead(ctx, user.ID, []string{"match:1", "inquiry:2"}))
	require.NoError(t, repo.MarkRead(ctx, user.ID, []string{"match:1"}))

	read, err := repo.ReadSet(ctx, user.ID, []string{"match:1", "inquiry:2", "message:3"})
	require.NoError(t, err)
	assert.True(t, read["match:1"])
	assert.True(t, read["inquiry:2"])
	assert.False(t, read["message:3"])

	var rows int64
	require.NoError(t, db.Model(&models.NotificationRead{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

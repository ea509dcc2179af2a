package repository

import (
	"testing"
	"time"

	"hackswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := ctxWithTimeout(t)
	user := createUser(t, db, "s@example.com")
	now := time.Now()

	active := &models.Session{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	expired := &models.Session{UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, expired))

	got, err := repo.GetActive(ctx, active.Token, now)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	_, err = repo.GetActive(ctx, expired.Token, now)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, repo.DeleteByToken(ctx, active.Token))
	require.NoError(t, repo.DeleteByToken(ctx, active.Token))
	_, err = repo.GetActive(ctx, active.Token, now)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

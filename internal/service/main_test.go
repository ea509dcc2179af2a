package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hackswipe/internal/cache"
	"hackswipe/internal/database"
	"hackswipe/internal/models"
	"hackswipe/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires every service against one in-memory SQLite database.
type testEnv struct {
	db *gorm.DB

	users         repository.UserRepository
	posts         repository.PostRepository
	swipes        repository.SwipeRepository
	inquiries     repository.InquiryRepository
	matches       repository.MatchRepository
	chats         repository.ChatRepository
	notifications repository.NotificationRepository

	auth     *AuthService
	profile  *ProfileService
	explore  *ExploreService
	swipe    *SwipeService
	post     *PostService
	inquiry  *InquiryService
	match    *MatchService
	chat     *ChatService
	notify   *NotificationService
	overview *OverviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	env := &testEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		posts:         repository.NewPostRepository(db),
		swipes:        repository.NewSwipeRepository(db),
		inquiries:     repository.NewInquiryRepository(db),
		matches:       repository.NewMatchRepository(db),
		chats:         repository.NewChatRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
	sessions := repository.NewSessionRepository(db)
	profiles := repository.NewProfileRepository(db)

	env.auth = NewAuthService(env.users, sessions, profiles, 24*time.Hour)
	env.auth.SetBcryptCost(bcrypt.MinCost)
	env.profile = NewProfileService(profiles)
	env.explore = NewExploreService(env.users, env.posts, 10)
	env.swipe = NewSwipeService(env.swipes, env.users, env.posts)
	env.post = NewPostService(env.posts)
	env.inquiry = NewInquiryService(env.inquiries, env.posts, env.users)
	env.match = NewMatchService(env.matches, env.users)
	env.chat = NewChatService(env.chats, env.users)
	env.notify = NewNotificationService(env.matches, env.inquiries, env.chats, env.users, env.posts, env.notifications)
	env.overview = NewOverviewService(env.users, env.posts, env.matches, env.swipes, env.inquiries)
	return env
}

// withRedis points the cache package at a miniredis instance for one test.
func withRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	prev := cache.GetClient()
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(prev)
		_ = rdb.Close()
	})
	return mr
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Name: name, PasswordHash: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) newPost(t *testing.T, leaderID string, postType models.PostType, title string) *models.Post {
	t.Helper()
	p := &models.Post{LeaderID: leaderID, Type: postType, Title: title}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func testCtx() context.Context {
	return context.Background()
}

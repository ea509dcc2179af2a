package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackswipe/internal/cache"
	"hackswipe/internal/config"
	"hackswipe/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServerOptions struct {
	noRedis bool
	cfg     func(*config.Config)
}

// newTestServer builds a fully wired server over in-memory SQLite and,
// unless disabled, miniredis.
func newTestServer(t *testing.T, opts testServerOptions) (*Server, *fiber.App) {
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

	var rdb *redis.Client
	if !opts.noRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		Port:           "0",
		Env:            "test",
		DBDriver:       "sqlite",
		AllowedOrigins: "http://localhost:5173",
		WSTicketSecret: "test-ticket-secret",
	}
	if opts.cfg != nil {
		opts.cfg(cfg)
	}

	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	srv.authService.SetBcryptCost(bcrypt.MinCost)
	return srv, srv.NewApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

type testUser struct {
	ID    string
	Token string
}

func registerUser(t *testing.T, app *fiber.App, email, name string) testUser {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": email, "password": "secret-pass", "name": name,
	})
	require.Equal(t, http.StatusOK, status, body)
	user := body["user"].(map[string]any)
	return testUser{ID: user["id"].(string), Token: body["token"].(string)}
}

func list(t *testing.T, body map[string]any, key string) []any {
	t.Helper()
	items, ok := body[key].([]any)
	require.True(t, ok, "expected %q to be a list in %v", key, body)
	return items
}

func TestHealthAndFallbacks(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})

	status, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, _ = doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	for _, path := range []string{"/api/does-not-exist", "/nowhere"} {
		status, body = doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "Not found", body["error"], path)
	}
}

func TestAuthFlow(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})

	alice := registerUser(t, app, "alice@example.com", "Alice")
	assert.NotEmpty(t, alice.Token)

	t.Run("duplicate email", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"email": "alice@example.com", "password": "other", "name": "Alice Again",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "User already exists", body["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"email": "bob@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Missing required fields", body["error"])
	})

	t.Run("login", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email": "alice@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", body["error"])

		status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email": "nobody@example.com", "password": "secret-pass",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", body["error"])

		status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email": "alice@example.com", "password": "secret-pass",
		})
		require.Equal(t, http.StatusOK, status)
		assert.NotEqual(t, alice.Token, body["token"])
	})

	t.Run("me", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/auth/me", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		user := body["user"].(map[string]any)
		assert.Equal(t, "alice@example.com", user["email"])
		assert.NotContains(t, user, "passwordHash")
		assert.Nil(t, body["profile"])

		status, body = doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Not authenticated", body["error"])

		status, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", "not-a-real-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("logout", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth/logout", "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])

		status, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", alice.Token, nil)
		assert.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", alice.Token, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/explore/people"},
		{http.MethodPost, "/api/swipe"},
		{http.MethodGet, "/api/matches"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPost, "/api/dummy-data"},
		{http.MethodPost, "/api/ws/ticket"},
	} {
		status, body := doJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, route.path)
		assert.Equal(t, "UNAUTHENTICATED", body["code"], route.path)
	}
}

func TestTwoUserMatchScenario(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})

	alice := registerUser(t, app, "alice@example.com", "Alice")
	bob := registerUser(t, app, "bob@example.com", "Bob")

	status, body := doJSON(t, app, http.MethodGet, "/api/explore/people", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	people := list(t, body, "people")
	require.Len(t, people, 1)
	assert.Equal(t, bob.ID, people[0].(map[string]any)["id"])

	swipe := func(u testUser, target string) (int, map[string]any) {
		return doJSON(t, app, http.MethodPost, "/api/swipe", u.Token, fiber.Map{
			"targetType": "PERSON", "targetId": target, "direction": "RIGHT",
		})
	}

	status, body = swipe(alice, bob.ID)
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["match"])
	assert.Equal(t, "RIGHT", body["swipe"].(map[string]any)["direction"])

	status, body = swipe(alice, bob.ID)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Already swiped", body["error"])

	status, body = swipe(bob, alice.ID)
	require.Equal(t, http.StatusOK, status, body)
	match := body["match"].(map[string]any)
	assert.Equal(t, true, match["isNew"])
	assert.Equal(t, "PEOPLE", match["context"])
	assert.Equal(t, bob.ID, match["aId"])
	assert.Equal(t, alice.ID, match["bId"])

	for _, u := range []testUser{alice, bob} {
		status, body = doJSON(t, app, http.MethodGet, "/api/matches", u.Token, nil)
		require.Equal(t, http.StatusOK, status)
		matches := list(t, body, "matches")
		require.Len(t, matches, 1)
		other := matches[0].(map[string]any)["otherUser"].(map[string]any)
		assert.NotEqual(t, u.ID, other["id"])
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/explore/people", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list(t, body, "people"))

	status, body = doJSON(t, app, http.MethodGet, "/api/overview", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["totalMatches"])
	assert.EqualValues(t, 1, stats["totalSwipes"])
}

func TestSwipeValidation(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})
	alice := registerUser(t, app, "alice@example.com", "Alice")

	status, _ := doJSON(t, app, http.MethodPost, "/api/swipe", alice.Token, fiber.Map{
		"targetType": "PLANET", "targetId": alice.ID, "direction": "RIGHT",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/swipe", alice.Token, fiber.Map{
		"targetType": "PERSON", "targetId": alice.ID, "direction": "RIGHT",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/swipe", alice.Token, fiber.Map{
		"targetType": "PERSON", "targetId": "8a4c9f70-0000-4000-8000-000000000000", "direction": "LEFT",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/explore/teams", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostInquiryLifecycle(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})
	leader := registerUser(t, app, "leader@example.com", "Leader")
	applicant := registerUser(t, app, "applicant@example.com", "Applicant")

	status, body := doJSON(t, app, http.MethodPost, "/api/posts", leader.Token, fiber.Map{
		"type": "PROJECT", "title": "  Open Source CLI  ", "skillsNeeded": []string{"Go", " "},
	})
	require.Equal(t, http.StatusOK, status, body)
	post := body["post"].(map[string]any)
	postID := post["id"].(string)
	assert.Equal(t, "Open Source CLI", post["title"])
	assert.Equal(t, "OPEN", post["status"])
	assert.Equal(t, []any{"Go"}, post["skillsNeeded"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/posts", leader.Token, fiber.Map{"type": "MEETUP", "title": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/explore/projects", applicant.Token, nil)
	require.Equal(t, http.StatusOK, status)
	posts := list(t, body, "posts")
	require.Len(t, posts, 1)
	assert.Equal(t, leader.ID, posts[0].(map[string]any)["leader"].(map[string]any)["id"])

	status, body = doJSON(t, app, http.MethodGet, "/api/explore/projects", leader.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list(t, body, "posts"))

	status, body = doJSON(t, app, http.MethodGet, "/api/random-project", applicant.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, postID, body["project"].(map[string]any)["id"])

	status, body = doJSON(t, app, http.MethodPost, "/api/swipe", applicant.Token, fiber.Map{
		"targetType": "PROJECT", "targetId": postID, "direction": "RIGHT",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["match"])

	status, body = doJSON(t, app, http.MethodGet, "/api/random-project", applicant.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["project"])

	status, body = doJSON(t, app, http.MethodGet, "/api/inquiries", leader.Token, nil)
	require.Equal(t, http.StatusOK, status)
	inquiries := list(t, body, "inquiries")
	require.Len(t, inquiries, 1)
	inquiry := inquiries[0].(map[string]any)
	assert.Equal(t, "PENDING", inquiry["status"])
	assert.Equal(t, applicant.ID, inquiry["user"].(map[string]any)["id"])
	inquiryID := inquiry["id"].(string)

	decide := func(u testUser, status string) (int, map[string]any) {
		return doJSON(t, app, http.MethodPatch, "/api/inquiries/"+inquiryID, u.Token, fiber.Map{"status": status})
	}

	status, body = decide(applicant, "ACCEPTED")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Unauthorized", body["error"])

	status, _ = decide(leader, "MAYBE")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = decide(leader, "ACCEPTED")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["success"])

	status, body = decide(leader, "DECLINED")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Inquiry has already been decided", body["error"])

	status, _ = doJSON(t, app, http.MethodPatch, "/api/inquiries/8a4c9f70-0000-4000-8000-000000000000", leader.Token, fiber.Map{"status": "ACCEPTED"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/posts/my-posts", leader.Token, nil)
	require.Equal(t, http.StatusOK, status)
	mine := list(t, body, "posts")
	require.Len(t, mine, 1)
	assert.EqualValues(t, 1, mine[0].(map[string]any)["inquiryCount"])
	assert.EqualValues(t, 1, mine[0].(map[string]any)["acceptedCount"])

	status, body = doJSON(t, app, http.MethodGet, "/api/overview", applicant.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["stats"].(map[string]any)["ongoingProjects"])

	t.Run("update", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, "/api/posts/"+postID, leader.Token, fiber.Map{
			"title": "Renamed", "location": " ",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Location is required", body["error"])

		status, body = doJSON(t, app, http.MethodPut, "/api/posts/"+postID, applicant.Token, fiber.Map{
			"title": "Hijacked", "location": "Remote",
		})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Post not found or unauthorized", body["error"])

		status, body = doJSON(t, app, http.MethodPut, "/api/posts/"+postID, leader.Token, fiber.Map{
			"title": " Renamed ", "location": " Berlin ",
		})
		require.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, "Renamed", body["post"].(map[string]any)["title"])
		assert.Equal(t, "Berlin", body["post"].(map[string]any)["location"])
	})

	t.Run("delete", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, applicant.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = doJSON(t, app, http.MethodDelete, "/api/posts/not-a-uuid", leader.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)

		status, body := doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, leader.Token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])

		status, body = doJSON(t, app, http.MethodGet, "/api/inquiries", leader.Token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, list(t, body, "inquiries"))
	})
}

func TestMessaging(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})
	alice := registerUser(t, app, "alice@example.com", "Alice")
	bob := registerUser(t, app, "bob@example.com", "Bob")
	eve := registerUser(t, app, "eve@example.com", "Eve")

	status, body := doJSON(t, app, http.MethodPost, "/api/conversations", alice.Token, fiber.Map{
		"participantIds": []string{bob.ID, bob.ID, alice.ID},
	})
	require.Equal(t, http.StatusOK, status, body)
	convID := body["conversation"].(map[string]any)["id"].(string)

	status, _ = doJSON(t, app, http.MethodPost, "/api/conversations", alice.Token, fiber.Map{
		"participantIds": []string{"8a4c9f70-0000-4000-8000-000000000000"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	send := func(u testUser, content string) (int, map[string]any) {
		return doJSON(t, app, http.MethodPost, "/api/messages", u.Token, fiber.Map{
			"conversationId": convID, "content": content,
		})
	}

	status, body = send(alice, "hi bob")
	require.Equal(t, http.StatusOK, status, body)
	msg := body["message"].(map[string]any)
	assert.Equal(t, "hi bob", msg["content"])
	assert.Equal(t, alice.ID, msg["sender"].(map[string]any)["id"])

	status, _ = send(alice, "   ")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = send(eve, "let me in")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Unauthorized", body["error"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/conversations/"+convID+"/messages", eve.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/conversations/"+convID+"/messages", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	messages := list(t, body, "messages")
	require.Len(t, messages, 1)
	assert.Equal(t, "hi bob", messages[0].(map[string]any)["content"])

	status, body = doJSON(t, app, http.MethodGet, "/api/conversations", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	conversations := list(t, body, "conversations")
	require.Len(t, conversations, 1)
	summary := conversations[0].(map[string]any)
	assert.Equal(t, "hi bob", summary["latestMessage"].(map[string]any)["content"])
	participants := summary["participants"].([]any)
	require.Len(t, participants, 1)
	assert.Equal(t, alice.ID, participants[0].(map[string]any)["id"])

	status, body = doJSON(t, app, http.MethodGet, "/api/notifications", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	notes := list(t, body, "notifications")
	require.Len(t, notes, 1)
	assert.Equal(t, "New message from Alice", notes[0].(map[string]any)["message"])
}

func TestProfileReplaceAndPatch(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})
	alice := registerUser(t, app, "alice@example.com", "Alice")

	status, body := doJSON(t, app, http.MethodPut, "/api/profile", alice.Token, fiber.Map{
		"bio":    "Builder",
		"skills": []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusOK, status, body)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "Builder", profile["bio"])
	assert.Equal(t, []any{}, profile["interests"])

	status, body = doJSON(t, app, http.MethodPatch, "/api/profile", alice.Token, fiber.Map{"bio": "Shipper"})
	require.Equal(t, http.StatusOK, status, body)
	profile = body["profile"].(map[string]any)
	assert.Equal(t, "Shipper", profile["bio"])
	assert.Equal(t, []any{"Go", "SQL"}, profile["skills"])

	status, body = doJSON(t, app, http.MethodPut, "/api/profile", alice.Token, fiber.Map{"bio": "Reset"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["profile"].(map[string]any)["skills"])

	status, body = doJSON(t, app, http.MethodGet, "/api/profile", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Reset", body["profile"].(map[string]any)["bio"])

	status, body = doJSON(t, app, http.MethodGet, "/api/auth/me", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body["profile"])
}

func TestNotificationReadState(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{})
	alice := registerUser(t, app, "alice@example.com", "Alice")
	bob := registerUser(t, app, "bob@example.com", "Bob")

	for _, pair := range [][2]testUser{{alice, bob}, {bob, alice}} {
		status, body := doJSON(t, app, http.MethodPost, "/api/swipe", pair[0].Token, fiber.Map{
			"targetType": "PERSON", "targetId": pair[1].ID, "direction": "RIGHT",
		})
		require.Equal(t, http.StatusOK, status, body)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/notifications", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	notes := list(t, body, "notifications")
	require.Len(t, notes, 1)
	note := notes[0].(map[string]any)
	assert.Equal(t, "You matched with Bob!", note["message"])
	assert.Equal(t, false, note["read"])
	noteID := note["id"].(string)
	assert.Regexp(t, `^match:`, noteID)

	status, _ = doJSON(t, app, http.MethodPost, "/api/notifications/bogus/read", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/notifications/"+noteID+"/read", alice.Token, nil)
	require.Equal(t, http.StatusOK, status, body)

	status, body = doJSON(t, app, http.MethodGet, "/api/notifications", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, list(t, body, "notifications")[0].(map[string]any)["read"])

	status, body = doJSON(t, app, http.MethodPost, "/api/notifications/read-all", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	status, body = doJSON(t, app, http.MethodGet, "/api/notifications", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	for _, n := range list(t, body, "notifications") {
		assert.Equal(t, true, n.(map[string]any)["read"])
	}
}

func TestStreakAndFeatureFlags(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{cfg: func(c *config.Config) {
		c.FeatureFlags = "demo_data=on,random_project=0%"
	}})
	alice := registerUser(t, app, "alice@example.com", "Alice")

	status, body := doJSON(t, app, http.MethodGet, "/api/streak", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["streak"])

	status, body = doJSON(t, app, http.MethodGet, "/api/feature-flags", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"demo_data": true, "random_project": false}, body["flags"])
}

func TestDummyDataGate(t *testing.T) {
	t.Run("outside production", func(t *testing.T) {
		_, app := newTestServer(t, testServerOptions{})
		alice := registerUser(t, app, "alice@example.com", "Alice")

		status, body := doJSON(t, app, http.MethodPost, "/api/dummy-data", alice.Token, nil)
		require.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Comprehensive dummy data created", body["message"])

		status, _ = doJSON(t, app, http.MethodPost, "/api/dummy-data", alice.Token, nil)
		assert.Equal(t, http.StatusOK, status)

		status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email": "aisha.kandhari@gmail.com", "password": "dummy123",
		})
		require.Equal(t, http.StatusOK, status, body)

		status, body = doJSON(t, app, http.MethodGet, "/api/explore/hackathons", alice.Token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, list(t, body, "posts"))
	})

	t.Run("production without flag", func(t *testing.T) {
		_, app := newTestServer(t, testServerOptions{cfg: func(c *config.Config) { c.Env = "production" }})
		alice := registerUser(t, app, "alice@example.com", "Alice")

		status, body := doJSON(t, app, http.MethodPost, "/api/dummy-data", alice.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Not found", body["error"])
	})

	t.Run("production with flag", func(t *testing.T) {
		_, app := newTestServer(t, testServerOptions{cfg: func(c *config.Config) {
			c.Env = "production"
			c.FeatureFlags = "demo_data=on"
		}})
		alice := registerUser(t, app, "alice@example.com", "Alice")

		status, _ := doJSON(t, app, http.MethodPost, "/api/dummy-data", alice.Token, nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestReadinessWithoutRedis(t *testing.T) {
	_, app := newTestServer(t, testServerOptions{noRedis: true})

	status, body := doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "unavailable", body["checks"].(map[string]any)["redis"])
}

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	SessionKeyPrefix = "session:%s"
	ProfileKeyPrefix = "profile:%s"
)

const (
	SessionTTL = 5 * time.Minute
	ProfileTTL = 10 * time.Minute
)

func SessionKey(token string) string {
	return fmt.Sprintf(SessionKeyPrefix, token)
}

func ProfileKey(userID string) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

// Invalidate removes key; it is a no-op without Redis.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateSession(ctx context.Context, token string) {
	Invalidate(ctx, SessionKey(token))
}

func InvalidateProfile(ctx context.Context, userID string) {
	Invalidate(ctx, ProfileKey(userID))
}

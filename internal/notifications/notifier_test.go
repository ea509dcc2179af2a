package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.PublishUser(context.Background(), "u1", []byte("payload")))
	assert.NoError(t, n.StartUserSubscriber(context.Background(), func(string, string) {}))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "notifications:user:abc", UserChannel("abc"))
}

func TestEncode(t *testing.T) {
	data, err := Encode(EventInquiryDecided, map[string]string{"status": "ACCEPTED"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"inquiry_decided","payload":{"status":"ACCEPTED"}}`, string(data))
}

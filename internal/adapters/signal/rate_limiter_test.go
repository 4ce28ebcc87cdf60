package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatRateLimiter_Window(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewChatRateLimiter(2, 10*time.Second)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "limits are per connection")

	now = now.Add(11 * time.Second)
	assert.True(t, rl.Allow("a"))
}

func TestChatRateLimiter_Forget(t *testing.T) {
	rl := NewChatRateLimiter(1, time.Hour)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	rl.Forget("a")
	assert.True(t, rl.Allow("a"))
}

func TestChatRateLimiter_Disabled(t *testing.T) {
	var nilLimiter *ChatRateLimiter
	unlimited := NewChatRateLimiter(0, time.Second)

	for i := 0; i < 100; i++ {
		assert.True(t, nilLimiter.Allow("a"))
		assert.True(t, unlimited.Allow("a"))
	}
	nilLimiter.Forget("a")
}

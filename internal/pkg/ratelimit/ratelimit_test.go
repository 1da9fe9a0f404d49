package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowPerKey(t *testing.T) {
	rl := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("a")
		assert.True(t, ok)
	}

	ok, retryAfter := rl.Allow("a")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, 20*time.Second)

	ok, _ = rl.Allow("b")
	assert.True(t, ok)
}

func TestResetRestoresBudget(t *testing.T) {
	rl := New(1, time.Minute)

	ok, _ := rl.Allow("a")
	assert.True(t, ok)
	ok, _ = rl.Allow("a")
	assert.False(t, ok)

	rl.Reset("a")
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	rl := New(5, time.Millisecond)
	rl.Allow("a")
	rl.Allow("b")
	assert.Equal(t, 2, rl.size())

	time.Sleep(5 * time.Millisecond)
	rl.Cleanup()
	assert.Equal(t, 0, rl.size())
}

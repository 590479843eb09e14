package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetVisitorBurst(t *testing.T) {
	t.Cleanup(CleanupAllVisitors)
	Configure(1, 3)

	l := GetVisitor("10.0.0.1")
	assert.Same(t, l, GetVisitor("10.0.0.1"))

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(), "request %d within burst", i)
	}
	assert.False(t, l.Allow())
	assert.True(t, GetVisitor("10.0.0.2").Allow(), "visitors are limited independently")
}

func TestRemoveIdle(t *testing.T) {
	t.Cleanup(CleanupAllVisitors)

	GetVisitor("10.0.0.1")
	removeIdle(time.Now())
	mu.Lock()
	assert.Len(t, visitors, 1)
	mu.Unlock()

	removeIdle(time.Now().Add(idleTimeout + time.Second))
	mu.Lock()
	assert.Empty(t, visitors)
	mu.Unlock()
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New()

	c.Set("documents", []string{"a", "b"})

	v, ok := c.Get("documents")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_GetFresh(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("user", "alice")

	// Still fresh.
	now = now.Add(30 * time.Second)
	_, ok := c.GetFresh("user", time.Minute)
	assert.True(t, ok)

	// Stale.
	now = now.Add(2 * time.Minute)
	_, ok = c.GetFresh("user", time.Minute)
	assert.False(t, ok)
}

func TestCache_InvalidateByPrefix(t *testing.T) {
	c := New()
	c.Set("qa/questions", 1)
	c.Set("qa/question/q1", 2)
	c.Set("documents", 3)

	c.Invalidate("qa/questions", "qa/question")

	_, ok := c.Get("qa/questions")
	assert.False(t, ok)
	_, ok = c.Get("qa/question/q1")
	assert.False(t, ok)
	_, ok = c.Get("documents")
	assert.True(t, ok, "unrelated keys must survive")
}

func TestCache_InvalidateDoesNotMatchBareSubstrings(t *testing.T) {
	c := New()
	c.Set("documentsPrivate", 1)

	c.Invalidate("documents")

	_, ok := c.Get("documentsPrivate")
	assert.True(t, ok, "prefix match requires a '/' boundary")
}

func TestCache_Clear(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	assert.Equal(t, 0, c.Len())
}

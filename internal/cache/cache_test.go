package cache

import (
	"context"
	"testing"
	"time"

	"github.com/beout/beout-admin/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Cache = (*redis.Client)(nil)
	_ Cache = Noop{}
	_ Cache = (*Memory)(nil)
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	require.NoError(t, m.GetJSON(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])

	assert.ErrorIs(t, m.GetJSON(ctx, "missing", &got), ErrMiss)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.SetJSON(ctx, "k", "v", time.Second))
	m.now = func() time.Time { return now.Add(2 * time.Second) }

	var got string
	assert.ErrorIs(t, m.GetJSON(ctx, "k", &got), ErrMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_DeletePattern(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SetJSON(ctx, EmailTemplateKey("welcome", "en"), "a", 0))
	require.NoError(t, m.SetJSON(ctx, EmailTemplateKey("welcome", "fr"), "b", 0))
	require.NoError(t, m.SetJSON(ctx, TranslationKey("en", "common"), "c", 0))

	n, err := m.DeletePattern(ctx, EmailTemplatesKey)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, m.Len())
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var n Noop

	require.NoError(t, n.SetJSON(ctx, "k", "v", time.Minute))
	var got string
	assert.ErrorIs(t, n.GetJSON(ctx, "k", &got), ErrMiss)
}

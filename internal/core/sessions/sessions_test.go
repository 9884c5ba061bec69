package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(time.Hour)

	tok, err := s.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := s.Get(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)

	require.NoError(t, s.Delete(ctx, tok))
	_, err = s.Get(ctx, tok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(time.Nanosecond)

	tok, err := s.Create(ctx, 7)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = s.Get(ctx, tok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := s.Create(ctx, uint(i))
		require.NoError(t, err)
		require.False(t, seen[tok])
		seen[tok] = true
	}
}

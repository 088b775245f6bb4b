package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRevoke(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "abc", now.Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation ends when the token would have expired")
}

func TestMemoryStoreIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "old", now.Add(-time.Minute)))
	assert.Empty(t, store.revoked)
}

func TestMemoryStoreEmptyTokenID(t *testing.T) {
	store := NewMemoryStore()
	assert.ErrorIs(t, store.Revoke(context.Background(), "", time.Now().Add(time.Hour)), ErrEmptyTokenID)

	_, err := store.IsRevoked(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyTokenID)
}

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, "sports-portal:revoked:jti-1", revokedKey("jti-1"))
}

package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocations(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRevocations()

	revoked, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, m.Revoke(ctx, "a", time.Now().Add(time.Hour)))
	revoked, err = m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryRevocations_ExpiredEntriesVanish(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryRevocations()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, m.Revoke(ctx, "stale", now.Add(-time.Minute)))
	assert.NotContains(t, m.entries, "stale")

	now = now.Add(2 * time.Minute)
	revoked, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, m.entries)
}

func TestRevokeSession_FallsBackToMemory(t *testing.T) {
	// no Redis host is configured in TestMain
	assert.IsType(t, &MemoryRevocations{}, Revocations())

	require.NoError(t, RevokeSession("session-1", time.Now().Add(time.Hour)))
	assert.True(t, IsSessionRevoked("session-1"))
	assert.False(t, IsSessionRevoked("session-2"))
}

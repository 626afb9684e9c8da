package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
	"github.com/podomall/mall-ui-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:          "test-session-1",
		Credential:  "bearer-token-abc",
		DisplayName: "Alice",
	}

	err := store.Save(ctx, session)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session, retrieved)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{ID: "test-session-delete", Credential: "tok"}
	require.NoError(t, store.Save(ctx, session))

	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_SaveRejectsEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	err := store.Save(context.Background(), domainauth.Session{Credential: "tok"})
	assert.Error(t, err)
}

func TestSessionStore_DeleteEmptyIDIsNoop(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	assert.NoError(t, store.Delete(context.Background(), ""))
}

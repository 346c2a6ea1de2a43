package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func testSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:    id,
		Token: "bearer-token",
		Identity: domainauth.Identity{
			ID:     42,
			Email:  "admin@uni.edu",
			Role:   domainauth.RoleAdmin,
			Status: domainauth.StatusActive,
		},
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := testSession("sess-1", 30*time.Minute)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.Identity, got.Identity)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-del", 30*time.Minute)))

	require.NoError(t, store.Delete(ctx, "sess-del"))

	_, err := store.Get(ctx, "sess-del")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_DeleteEmptyIDIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), ""))
}

func TestSessionStore_KeyTTLTracksExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-ttl", 30*time.Minute)))

	ttl := mr.TTL("session:sess-ttl")
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestSessionStore_ExpiredRecordIsEvictedOnGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// Plant a record whose payload is already past expiry while the Redis
	// key itself is still alive, exercising the defensive re-check.
	sess := testSession("sess-stale", -time.Minute)
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	require.NoError(t, mr.Set("session:sess-stale", string(data)))

	_, err = store.Get(ctx, "sess-stale")
	assert.Equal(t, ErrNotFound, err)
	assert.False(t, mr.Exists("session:sess-stale"))
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), testSession("", time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), testSession("sess-expired", -time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewSessionStoreWithPrefix(client, "console:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-p", time.Minute)))
	assert.True(t, mr.Exists("console:sess-p"))

	got, err := store.Get(ctx, "sess-p")
	require.NoError(t, err)
	assert.Equal(t, "sess-p", got.ID)
}

package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store := NewRedisStorage(mr.Addr(), logger)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, mr
}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	s := &Session{
		ID:        uuid.New(),
		ScenePath: "adventures/kitten/kitten.scene",
	}
	require.NoError(t, store.SaveSession(ctx, s))
	assert.False(t, s.UpdatedAt.IsZero(), "SaveSession should stamp UpdatedAt")

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "adventures/kitten/kitten.scene", loaded.ScenePath)
}

func TestRedisStorage_LoadMissingSession(t *testing.T) {
	store, _ := setupTestRedis(t)

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SaveOverwrites(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	s := &Session{ID: uuid.New(), ScenePath: "a.scene"}
	require.NoError(t, store.SaveSession(ctx, s))

	s.ScenePath = "b.scene"
	require.NoError(t, store.SaveSession(ctx, s))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "b.scene", loaded.ScenePath)
}

func TestRedisStorage_DeleteSession(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	s := &Session{ID: uuid.New(), ScenePath: "a.scene"}
	require.NoError(t, store.SaveSession(ctx, s))
	require.NoError(t, store.DeleteSession(ctx, s.ID))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is not an error.
	require.NoError(t, store.DeleteSession(ctx, s.ID))
}

func TestRedisStorage_SessionExpiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	s := &Session{ID: uuid.New(), ScenePath: "a.scene"}
	require.NoError(t, store.SaveSession(ctx, s))

	mr.FastForward(SessionTTL * 2)

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_Ping(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

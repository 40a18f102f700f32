package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStorage_SaveAndLoadSession(t *testing.T) {
	store := NewMockStorage()
	ctx := context.Background()

	s := &Session{ID: uuid.New(), ScenePath: "kitten.scene"}
	require.NoError(t, store.SaveSession(ctx, s))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "kitten.scene", loaded.ScenePath)

	// The stored session is a copy, not an alias.
	s.ScenePath = "changed.scene"
	loaded, err = store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "kitten.scene", loaded.ScenePath)
}

func TestMockStorage_LoadMissingSession(t *testing.T) {
	store := NewMockStorage()

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMockStorage_DeleteSession(t *testing.T) {
	store := NewMockStorage()
	ctx := context.Background()

	s := &Session{ID: uuid.New(), ScenePath: "kitten.scene"}
	require.NoError(t, store.SaveSession(ctx, s))
	require.NoError(t, store.DeleteSession(ctx, s.ID))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMockStorage_Errors(t *testing.T) {
	store := NewMockStorage()
	ctx := context.Background()

	pingErr := errors.New("ping down")
	store.SetPingError(pingErr)
	assert.ErrorIs(t, store.Ping(ctx), pingErr)

	saveErr := errors.New("save down")
	store.SetSaveError(saveErr)
	err := store.SaveSession(ctx, &Session{ID: uuid.New()})
	assert.ErrorIs(t, err, saveErr)
}

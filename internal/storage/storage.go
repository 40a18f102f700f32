package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session records where a player is: the scene file currently
// displayed. Nothing else about the game is persisted.
type Session struct {
	ID        uuid.UUID `json:"id"`
	ScenePath string    `json:"scene_path"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage persists sessions so a player can resume at the scene they
// left off.
type Storage interface {
	// SaveSession stores the session, overwriting any previous state.
	SaveSession(ctx context.Context, s *Session) error

	// LoadSession returns the session with the given ID, or nil if it
	// does not exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*Session, error)

	// DeleteSession removes the session. Deleting a missing session
	// is not an error.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	Ping(ctx context.Context) error
	Close() error
}

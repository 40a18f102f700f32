// Package game drives scene transitions for one player: it holds the
// single live scene, applies action effects to user input, and keeps
// the session's current scene persisted when a store is configured.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/scene-engine/internal/storage"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

// Session is the state machine of one playthrough. Exactly one scene
// is live at a time; a transition swaps it for a freshly loaded one.
type Session struct {
	ID     uuid.UUID
	scene  *scene.Scene
	store  storage.Storage
	logger *slog.Logger
}

// StepResult is what one line of input produced.
type StepResult struct {
	// Text to show the user: action output, or the new scene's
	// description after a transition. Empty when no action matched.
	Text string

	// SceneChanged reports that Text is a new scene's description.
	SceneChanged bool
}

// New creates a session displaying the given scene. The store may be
// nil, in which case nothing is persisted.
func New(sc *scene.Scene, store storage.Storage, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ID:     uuid.New(),
		scene:  sc,
		store:  store,
		logger: logger,
	}
}

// Resume restores a persisted session: the stored scene file is loaded
// and the session continues under its original ID.
func Resume(ctx context.Context, id uuid.UUID, store storage.Storage, logger *slog.Logger) (*Session, error) {
	st, err := store.LoadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("session %s not found", id)
	}
	sc, err := scene.Load(st.ScenePath)
	if err != nil {
		return nil, err
	}

	s := New(sc, store, logger)
	s.ID = id
	return s, nil
}

// Scene returns the currently displayed scene.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Step applies one line of user input. Input matching no action yields
// an empty result. A failed transition leaves the current scene live
// and returns the error.
func (s *Session) Step(ctx context.Context, input string) (StepResult, error) {
	a := s.scene.GetAction(strings.TrimSpace(input))
	if a == nil {
		return StepResult{}, nil
	}

	switch effect := a.Effect().(type) {
	case scene.Output:
		return StepResult{Text: effect.Text}, nil

	case scene.ChangeScene:
		next, err := s.scene.LoadNext(effect.Name)
		if err != nil {
			return StepResult{}, err
		}
		s.scene = next
		s.persist(ctx)
		return StepResult{Text: next.Description(), SceneChanged: true}, nil

	default:
		return StepResult{}, fmt.Errorf("unknown effect %T", effect)
	}
}

// persist saves the current scene best-effort. Play continues even if
// the store is down.
func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	err := s.store.SaveSession(ctx, &storage.Session{
		ID:        s.ID,
		ScenePath: s.scene.Path(),
	})
	if err != nil {
		s.logger.Warn("Failed to persist session", "session", s.ID, "error", err)
	}
}

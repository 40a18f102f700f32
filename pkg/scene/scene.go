// Package scene implements the scene-file format: a free-form
// description followed by a block of action lines. User input is
// matched against the actions of the loaded scene to print text or
// transition to a sibling scene file.
package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the scene-file extension used when resolving transitions.
const Ext = ".scene"

// Scene is one unit of narrative content backed by one file. It is
// immutable after Load; transitions construct a brand-new Scene and
// the old one is discarded.
type Scene struct {
	path        string
	description string
	actions     []*Action
}

// Load reads and parses the scene file at path. Lines up to the first
// valid action line form the description, kept verbatim. Every
// following non-blank line must parse as an action; a line that does
// not is fatal and no Scene is returned. A file with no action lines
// at all is a valid dead-end scene.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore error in defer
	}()

	r := bufio.NewReader(f)
	var desc strings.Builder
	var actions []*Action

	// Description phase: everything until the first line that parses
	// as an action. Raw lines are kept, so blank lines and formatting
	// survive in the description.
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read scene file: %w", err)
		}
		if line != "" {
			a, perr := ParseAction(strings.TrimSpace(line))
			if perr == nil {
				actions = append(actions, a)
				break
			}
			desc.WriteString(line)
		}
		if err == io.EOF {
			break
		}
	}

	// Action phase: blank lines are skipped, anything else must parse.
	if len(actions) > 0 {
		for {
			line, err := r.ReadString('\n')
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read scene file: %w", err)
			}
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				a, perr := ParseAction(trimmed)
				if perr != nil {
					return nil, perr
				}
				actions = append(actions, a)
			}
			if err == io.EOF {
				break
			}
		}
	}

	return &Scene{
		path:        path,
		description: desc.String(),
		actions:     actions,
	}, nil
}

// GetAction returns the first action in file order whose matcher
// matches the trimmed input, or nil if none matches.
func (s *Scene) GetAction(input string) *Action {
	for _, a := range s.actions {
		if a.Matches(input) {
			return a
		}
	}
	return nil
}

// LoadNext resolves name to a sibling scene file (same directory,
// scene extension) and loads it. The receiver is left untouched, so a
// failed transition keeps the current scene valid.
func (s *Scene) LoadNext(name string) (*Scene, error) {
	return Load(filepath.Join(filepath.Dir(s.path), name+Ext))
}

// Description returns the verbatim description block.
func (s *Scene) Description() string {
	return s.description
}

// Path returns the path of the backing file.
func (s *Scene) Path() string {
	return s.path
}

// Actions returns the scene's actions in file order.
func (s *Scene) Actions() []*Action {
	return s.actions
}

// IsNotExist reports whether err is a missing-file load error, so
// callers can tell a dangling transition from other failures.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

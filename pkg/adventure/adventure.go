// Package adventure handles adventure metadata and discovery. An
// adventure is a directory holding scene files plus an about.yaml (or
// about.yml) file naming it and pointing at its starting scene.
package adventure

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/scene-engine/pkg/scene"
)

// DefaultStart is the starting scene file used when the about file
// does not name one.
const DefaultStart = "start" + scene.Ext

// Adventure is the metadata of one adventure, parsed from its about file.
type Adventure struct {
	Name    string
	Author  string
	Version string
	// StartPath is the resolved path of the starting scene file,
	// sibling to the about file.
	StartPath string
}

type aboutFile struct {
	Name    string `yaml:"name"`
	Author  string `yaml:"author"`
	Version string `yaml:"version"`
	Start   string `yaml:"start"`
}

// Load parses the about file at path. Name and author are required.
func Load(path string) (*Adventure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read about file: %w", err)
	}

	var about aboutFile
	if err := yaml.Unmarshal(data, &about); err != nil {
		return nil, fmt.Errorf("failed to parse about file %s: %w", path, err)
	}
	if about.Name == "" {
		return nil, fmt.Errorf("about file %s: missing name", path)
	}
	if about.Author == "" {
		return nil, fmt.Errorf("about file %s: missing author", path)
	}

	start := about.Start
	if start == "" {
		start = DefaultStart
	}

	return &Adventure{
		Name:      about.Name,
		Author:    about.Author,
		Version:   about.Version,
		StartPath: filepath.Join(filepath.Dir(path), start),
	}, nil
}

// String formats the adventure for display, e.g.
// "A cuddly kitten" by Fiona (version 1.0)
func (a *Adventure) String() string {
	s := fmt.Sprintf("%q by %s", a.Name, a.Author)
	if a.Version != "" {
		s += fmt.Sprintf(" (version %s)", a.Version)
	}
	return s
}

// Start loads the adventure's starting scene.
func (a *Adventure) Start() (*scene.Scene, error) {
	return scene.Load(a.StartPath)
}

// Search walks dir recursively and returns an Adventure for every
// about.yaml or about.yml file found.
func Search(dir string) ([]*Adventure, error) {
	var res []*Adventure
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "about.yaml" && name != "about.yml" {
			return nil
		}
		a, err := Load(path)
		if err != nil {
			return err
		}
		res = append(res, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Command validate checks an adventure directory: about files must
// load, every scene file must parse, and every scene transition must
// point at a scene file that exists.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/scene-engine/pkg/adventure"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	v := &validator{}
	if err := v.validateDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	if len(v.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation errors:\n%s\n", strings.Join(v.errors, "\n"))
		os.Exit(1)
	}

	fmt.Printf("Validated %d scene file(s) and %d adventure(s), no errors.\n", v.scenes, v.adventures)
}

type validator struct {
	errors     []string
	scenes     int
	adventures int
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) validateDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case d.Name() == "about.yaml" || d.Name() == "about.yml":
			v.validateAbout(path)
		case strings.HasSuffix(d.Name(), scene.Ext):
			v.validateScene(path)
		}
		return nil
	})
}

func (v *validator) validateAbout(path string) {
	v.adventures++
	a, err := adventure.Load(path)
	if err != nil {
		v.errorf("%s: %v", path, err)
		return
	}
	if _, err := os.Stat(a.StartPath); err != nil {
		v.errorf("%s: start scene %s does not exist", path, a.StartPath)
	}
}

func (v *validator) validateScene(path string) {
	v.scenes++
	s, err := scene.Load(path)
	if err != nil {
		v.errorf("%s: %v", path, err)
		return
	}

	for _, a := range s.Actions() {
		change, ok := a.Effect().(scene.ChangeScene)
		if !ok {
			continue
		}
		target := filepath.Join(filepath.Dir(path), change.Name+scene.Ext)
		if _, err := os.Stat(target); err != nil {
			v.errorf("%s: transition to %q but %s does not exist", path, change.Name, target)
		}
	}
}

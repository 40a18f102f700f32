package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "kitten.scene"))
	require.NoError(t, err)

	assert.Equal(t, "There's a little kitten in front of you!\n", s.Description())
	require.Len(t, s.Actions(), 2)

	a := s.GetAction("meow")
	require.NotNil(t, a)
	assert.Equal(t, Output{Text: `"Meow!" =^.^=`}, a.Effect())

	a = s.GetAction("hug")
	require.NotNil(t, a)
	assert.Equal(t, ChangeScene{Name: "cuddle_cat"}, a.Effect())

	assert.Nil(t, s.GetAction("bark"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "no_such.scene"))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}

func TestLoad_NoActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "end.scene")
	require.NoError(t, os.WriteFile(path, []byte("The end.\nThanks for playing!\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "The end.\nThanks for playing!\n", s.Description())
	assert.Empty(t, s.Actions())
	assert.Nil(t, s.GetAction("anything"))
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.scene")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.Description())
	assert.Empty(t, s.Actions())
}

func TestLoad_InvalidLineInActionBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.scene")
	content := "A dark room.\n\n!kw:look -> print Nothing here.\noops, not an action\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidAction)
	assert.Nil(t, s)
}

func TestLoad_InvalidPatternInActionBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badpattern.scene")
	content := "A dark room.\n\n!kw:look -> print Nothing here.\n!re:(oops -> print broken\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidPattern)
}

// A line that would be a bad action is still plain description before
// the action block starts.
func TestLoad_GardenPathDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garden.scene")
	content := "!re:(unclosed -> print almost an action\nMore description.\n\n!kw:go -> scene next\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "!re:(unclosed -> print almost an action\nMore description.\n\n", s.Description())
	require.Len(t, s.Actions(), 1)
}

func TestLoad_BlankLinesInActionBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blanks.scene")
	content := "A room.\n!kw:a -> print one\n\n\n!kw:b -> print two\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Actions(), 2)
}

func TestGetAction_FirstMatchWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.scene")
	content := "A room.\n!re:pet -> print first\n!kw:pet -> print second\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	a := s.GetAction("pet")
	require.NotNil(t, a)
	assert.Equal(t, Output{Text: "first"}, a.Effect())
}

func TestLoadNext(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "kitten.scene"))
	require.NoError(t, err)

	next, err := s.LoadNext("cuddle_cat")
	require.NoError(t, err)
	assert.Equal(t, "*purr*\nThere's a kitten purring in your arms!\n", next.Description())

	a := next.GetAction("pet")
	require.NotNil(t, a)
	assert.Equal(t, Output{Text: "*purr, purr*"}, a.Effect())

	a = next.GetAction("set down")
	require.NotNil(t, a)
	assert.Equal(t, ChangeScene{Name: "kitten"}, a.Effect())

	// The original scene is untouched by the transition.
	assert.Equal(t, "There's a little kitten in front of you!\n", s.Description())
}

func TestLoadNext_MissingScene(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "kitten.scene"))
	require.NoError(t, err)

	next, err := s.LoadNext("no_such_scene")
	require.Error(t, err)
	assert.Nil(t, next)
	assert.True(t, IsNotExist(err))
}

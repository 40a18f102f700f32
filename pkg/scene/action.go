package scene

import (
	"errors"
	"fmt"
	"regexp"
)

// Action line grammar: !<kind>:<pattern> -> <verb> <argument>
// Greedy capture of <pattern> means the last " -> " on the line wins
// when the pattern itself contains one.
var actionLineRe = regexp.MustCompile(`^!(\w+):(.*)\s->\s(\w+)\s(.*)$`)

// KindKeyword patterns match the exact trimmed input. Any other kind
// is compiled as a regular expression verbatim.
const KindKeyword = "kw"

// VerbScene is the action verb that triggers a scene transition. Any
// other verb produces output text.
const VerbScene = "scene"

var (
	// ErrInvalidAction indicates a line that does not match the action
	// grammar. During the description phase of a scene load this is
	// how description text is recognized; inside the action block it
	// is fatal.
	ErrInvalidAction = errors.New("invalid action line")

	// ErrInvalidPattern indicates an action pattern that does not
	// compile as a regular expression.
	ErrInvalidPattern = errors.New("invalid action pattern")
)

// Effect is the outcome of a matched action: either text to show the
// user, or a transition to another scene.
type Effect interface {
	isEffect()
}

// Output displays text to the user. The scene does not change.
type Output struct {
	Text string
}

// ChangeScene transitions to the named sibling scene file.
type ChangeScene struct {
	Name string
}

func (Output) isEffect()      {}
func (ChangeScene) isEffect() {}

// Action pairs a compiled input matcher with an effect. Actions are
// immutable after construction and owned by their Scene.
type Action struct {
	expr   *regexp.Regexp
	effect Effect
}

// ParseAction parses a single trimmed line into an Action. Lines not
// matching the grammar return ErrInvalidAction; keyword patterns are
// quoted and anchored, all other patterns are compiled verbatim and
// return ErrInvalidPattern when they fail to compile.
func ParseAction(line string) (*Action, error) {
	m := actionLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, line)
	}
	kind, pattern, verb, argument := m[1], m[2], m[3], m[4]

	if kind == KindKeyword {
		pattern = "^" + regexp.QuoteMeta(pattern) + "$"
	}
	expr, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	var effect Effect
	if verb == VerbScene {
		effect = ChangeScene{Name: argument}
	} else {
		effect = Output{Text: argument}
	}

	return &Action{expr: expr, effect: effect}, nil
}

// Matches reports whether the trimmed input triggers this action.
func (a *Action) Matches(input string) bool {
	return a.expr.MatchString(input)
}

// Effect returns the action's effect.
func (a *Action) Effect() Effect {
	return a.effect
}

// Pattern returns the source text of the compiled matcher.
func (a *Action) Pattern() string {
	return a.expr.String()
}

// Package codegen compiles handler trees into Lua code for the jsprog
// daemon.
//
// The daemon runs the compiled block of a key whenever the key changes,
// with the new value in the global "value". Each shift level whose
// handlers differ for the key is resolved at run time into a state index
// from the live values of its shift controls, and an if/elseif/else chain
// on that index selects the branch to run. Levels the key does not depend
// on produce no code.
package codegen

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/daemon"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

// Indent is the indentation of one block level.
const Indent = "  "

// ErrMalformedTree indicates a tree that does not descend one shift level
// per layer or does not end in a single action.
var ErrMalformedTree = errors.New("malformed handler tree")

// StateVar returns the name of the variable holding the state index of the
// shift level at depth.
func StateVar(depth int) string {
	return fmt.Sprintf("_jsprog_shift_%d", depth)
}

// KeyProfile compiles the code run for a key event. The compiled tree runs
// while the key is pressed; on release the previously started effect is
// cancelled if any action of the tree keeps running.
func KeyProfile(kp *handler.KeyProfile, levels []*shift.Level) ([]string, error) {
	body, err := Tree(&kp.Tree, levels, 0)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", kp.Code, err)
	}

	lines := make([]string, 0, len(body)+4)
	lines = append(lines, fmt.Sprintf("if %s~=0 then", daemon.ValueVar))
	lines = append(lines, action.Indent(body, Indent)...)
	if kp.NeedsCancelOnRelease() {
		lines = append(lines, "else")
		lines = append(lines, Indent+daemon.FnCancelPrevious+"()")
	}
	lines = append(lines, "end")
	return lines, nil
}

// Tree compiles the subtree t whose children belong to the shift level at
// depth.
func Tree(t *handler.Tree, levels []*shift.Level, depth int) ([]string, error) {
	children := t.Children()

	if depth == len(levels) {
		if len(children) != 1 || !children[0].IsLeaf() {
			return nil, fmt.Errorf("%w: expected one action at depth %d", ErrMalformedTree, depth)
		}
		return children[0].Leaf().LuaCode(), nil
	}

	if depth > len(levels) || len(children) == 0 {
		return nil, fmt.Errorf("%w: no shift handlers at depth %d", ErrMalformedTree, depth)
	}
	for _, c := range children {
		if c.IsLeaf() {
			return nil, fmt.Errorf("%w: action at depth %d of %d", ErrMalformedTree, depth, len(levels))
		}
	}

	if len(children) == 1 {
		return Tree(&children[0].Branch().Tree, levels, depth+1)
	}

	v := StateVar(depth)
	lines := StateCode(levels[depth], v)
	for i, c := range children {
		h := c.Branch()
		keyword := "elseif"
		if i == 0 {
			keyword = "if"
		}
		switch {
		case i == len(children)-1:
			lines = append(lines, "else")
		case h.IsSingle():
			lines = append(lines, fmt.Sprintf("%s %s==%d then", keyword, v, h.From))
		default:
			lines = append(lines, fmt.Sprintf("%s %s>=%d and %s<=%d then", keyword, v, h.From, v, h.To))
		}

		body, err := Tree(&h.Tree, levels, depth+1)
		if err != nil {
			return nil, err
		}
		lines = append(lines, action.Indent(body, Indent)...)
	}
	lines = append(lines, "end")
	return lines, nil
}

// StateCode computes the index of the active state of a level into the
// local variable v.
//
// The variable starts at the index of the level's empty state, or 0 if
// there is none. Without an empty state, state 0 therefore also covers
// the case where no state's controls hold. The non-empty states are then tested from the most
// specific (most controls) to the least specific, earlier states first
// among equally specific ones, and the first one whose controls all hold
// wins.
func StateCode(level *shift.Level, v string) []string {
	initial := level.EmptyIndex()
	if initial < 0 {
		initial = 0
	}
	lines := []string{fmt.Sprintf("local %s = %d", v, initial)}

	var candidates []int
	for i, s := range level.States() {
		if !s.IsEmpty() {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		return level.State(b).NumControls() - level.State(a).NumControls()
	})

	for n, idx := range candidates {
		keyword := "elseif"
		if n == 0 {
			keyword = "if"
		}
		lines = append(lines,
			fmt.Sprintf("%s %s then", keyword, Condition(level.State(idx))),
			fmt.Sprintf("%s%s = %d", Indent, v, idx))
	}
	if len(candidates) > 0 {
		lines = append(lines, "end")
	}
	return lines
}

// Condition returns the Lua expression that holds when every control of
// the state has its expected value.
func Condition(s *shift.State) string {
	terms := make([]string, 0, s.NumControls())
	for _, c := range s.Controls() {
		term := fmt.Sprintf("%s(%d)", daemon.FnIsKeyPressed, c.Code)
		if c.IsDefault() {
			term = "not " + term
		}
		terms = append(terms, term)
	}
	return strings.Join(terms, " and ")
}

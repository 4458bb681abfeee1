package model

import "slices"

// ChoiceMode selects how annotation targets are chosen.
type ChoiceMode int

// Available choice modes.
const (
	ModeAll ChoiceMode = iota + 1
	ModeExplicit
)

// Selection is an immutable set of source lines. A Selection can only be
// built by SelectFrom, so every line is a key of the index it came from.
type Selection struct {
	lines []int
}

// SelectFrom builds a Selection of lines from eligible. It returns false when
// lines is empty or any line is not a key of eligible. Duplicate lines are
// kept once.
func SelectFrom[V any](eligible map[int]V, lines []int) (Selection, bool) {
	if len(lines) == 0 {
		return Selection{}, false
	}

	out := make([]int, 0, len(lines))

	for _, line := range lines {
		if _, ok := eligible[line]; !ok {
			return Selection{}, false
		}

		if !slices.Contains(out, line) {
			out = append(out, line)
		}
	}

	slices.Sort(out)

	return Selection{lines: out}, true
}

// SelectAll builds a Selection of every key of eligible.
func SelectAll[V any](eligible map[int]V) Selection {
	out := make([]int, 0, len(eligible))
	for line := range eligible {
		out = append(out, line)
	}

	slices.Sort(out)

	return Selection{lines: out}
}

// Has reports whether line is selected.
func (s Selection) Has(line int) bool {
	_, found := slices.BinarySearch(s.lines, line)

	return found
}

// Lines returns the selected lines in ascending order.
func (s Selection) Lines() []int {
	return slices.Clone(s.lines)
}

// Len returns the number of selected lines.
func (s Selection) Len() int {
	return len(s.lines)
}

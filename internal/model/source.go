// Package model defines the data structures shared by the consept workflows.
package model

import "strings"

// Path represents a file system path.
type Path string

// LineRange is an inclusive, 1-based range of source lines.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line lies inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Lines is an ordered sequence of source lines. Every element keeps its own
// line terminator (if any), so joining the elements reproduces the input text
// byte for byte. Rewriting operations return a new Lines value and never
// modify the receiver.
type Lines []string

// SplitLines splits text after every '\n', keeping the terminators.
func SplitLines(text string) Lines {
	if text == "" {
		return Lines{}
	}

	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return Lines(parts)
}

// Line returns the text of the 1-based line n and whether it exists.
func (l Lines) Line(n int) (string, bool) {
	if n < 1 || n > len(l) {
		return "", false
	}

	return l[n-1], true
}

// Clone returns a copy that can be modified independently.
func (l Lines) Clone() Lines {
	out := make(Lines, len(l))
	copy(out, l)

	return out
}

// String joins the lines back into a single text.
func (l Lines) String() string {
	return strings.Join(l, "")
}

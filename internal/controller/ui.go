// Package controller provides the interactive channel used by the consept workflows.
package controller

import (
	"errors"
	"slices"

	m "github.com/mouse-blink/consept/internal/model"
)

// ErrPickCancelled is returned when the user leaves the function picker
// without choosing.
var ErrPickCancelled = errors.New("selection cancelled")

// UI defines how workflows talk to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Println writes a line of output.
	Println(a ...any)
	// Prompt prints label and reads one answer line. It returns io.EOF once
	// the input is exhausted.
	Prompt(label string) (string, error)
	// DisplayVariables lists the annotatable variables by declaration line.
	DisplayVariables(index m.VariableIndex) error
	// DisplayFunctions lists the indexed functions by declaration line.
	DisplayFunctions(index m.FunctionIndex) error
	// PickFunction lets the user choose a function and returns the line it
	// was chosen by. The line is not validated.
	PickFunction(index m.FunctionIndex) (int, error)
}

func sortedLines[V any](index map[int]V) []int {
	lines := make([]int, 0, len(index))
	for line := range index {
		lines = append(lines, line)
	}

	slices.Sort(lines)

	return lines
}

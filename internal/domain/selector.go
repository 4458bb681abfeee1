package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mouse-blink/consept/internal/controller"
	m "github.com/mouse-blink/consept/internal/model"
)

var (
	// ErrInvalidSelection is returned when a chosen line is not eligible.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNoParameters is returned when a fuzz target takes no parameters.
	ErrNoParameters = errors.New("function has no parameters")
	// ErrInvalidChoice is returned for an unknown annotation mode.
	ErrInvalidChoice = errors.New("invalid choice")
)

// ResolveChoice turns a mode and an optional explicit line list into a
// Selection of keys of eligible. Explicit lists are accepted whole or not at
// all.
func ResolveChoice[V any](mode m.ChoiceMode, eligible map[int]V, explicit []int) (m.Selection, error) {
	switch mode {
	case m.ModeAll:
		return m.SelectAll(eligible), nil
	case m.ModeExplicit:
		selection, ok := m.SelectFrom(eligible, explicit)
		if !ok {
			return m.Selection{}, fmt.Errorf("%w: %v", ErrInvalidSelection, explicit)
		}

		return selection, nil
	default:
		return m.Selection{}, fmt.Errorf("%w: %d", ErrInvalidChoice, mode)
	}
}

// ResolveFuzzTarget returns the function declared at line, rejecting unknown
// lines and functions without parameters.
func ResolveFuzzTarget(index m.FunctionIndex, line int) (m.FunctionSignature, error) {
	fn, ok := index.Details[line]
	if !ok {
		return m.FunctionSignature{}, fmt.Errorf("%w: line %d", ErrInvalidSelection, line)
	}

	if fn.ParamCount() == 0 {
		return m.FunctionSignature{}, fmt.Errorf("%w: %s", ErrNoParameters, fn.Name)
	}

	return fn, nil
}

// ParseChoiceMode parses the "1" (all) / "2" (explicit) menu answer.
func ParseChoiceMode(answer string) (m.ChoiceMode, error) {
	switch strings.TrimSpace(answer) {
	case "1":
		return m.ModeAll, nil
	case "2":
		return m.ModeExplicit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, answer)
	}
}

// ParseLineList parses a comma-separated list of line numbers.
func ParseLineList(answer string) ([]int, error) {
	fields := strings.Split(answer, ",")
	lines := make([]int, 0, len(fields))

	for _, field := range fields {
		line, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a line number", ErrInvalidSelection, field)
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// SelectVariables asks until the user picks a valid set of variable lines.
func SelectVariables(ui controller.UI, index m.VariableIndex) (m.Selection, error) {
	for {
		ui.Println("\nChoose what to annotate:")
		ui.Println("1. All variables")
		ui.Println("2. Select specific variables")

		answer, err := ui.Prompt("Enter your choice (1 or 2): ")
		if err != nil {
			return m.Selection{}, err
		}

		mode, err := ParseChoiceMode(answer)
		if err != nil {
			ui.Println("\nInvalid choice")
			continue
		}

		var explicit []int

		if mode == m.ModeExplicit {
			if err := ui.DisplayVariables(index); err != nil {
				return m.Selection{}, err
			}

			rows, err := ui.Prompt("Enter rows here (comma-separated): ")
			if err != nil {
				return m.Selection{}, err
			}

			explicit, err = ParseLineList(rows)
			if err != nil {
				ui.Println("\nInvalid input provided")
				continue
			}
		}

		selection, err := ResolveChoice(mode, index, explicit)
		if err != nil {
			ui.Println("\nInvalid row(s) provided")
			continue
		}

		return selection, nil
	}
}

// SelectFuzzTarget asks until the user picks a function that takes
// parameters. It fails with ErrNoParameters when no function does.
func SelectFuzzTarget(ui controller.UI, index m.FunctionIndex) (m.FunctionSignature, error) {
	if !slices.ContainsFunc(index.Lines(), func(line int) bool { return index.Details[line].ParamCount() > 0 }) {
		return m.FunctionSignature{}, fmt.Errorf("%w: no function to fuzz", ErrNoParameters)
	}

	for {
		line, err := ui.PickFunction(index)
		if err != nil {
			return m.FunctionSignature{}, err
		}

		fn, err := ResolveFuzzTarget(index, line)
		if err != nil {
			ui.Println("Invalid input")
			continue
		}

		return fn, nil
	}
}

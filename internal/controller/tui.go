package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/consept/internal/model"
)

// TUI implements UI using Bubble Tea for function picking and lipgloss for
// listings. Free text answers are read line by line like SimpleUI.
type TUI struct {
	*SimpleUI

	input  io.Reader
	output io.Writer
	run    func(tea.Model) (tea.Model, error)
}

// NewTUI creates a new TUI on the command's streams.
func NewTUI(cmd *cobra.Command) *TUI {
	t := &TUI{
		SimpleUI: NewSimpleUI(cmd),
		input:    cmd.InOrStdin(),
		output:   cmd.OutOrStdout(),
	}
	t.run = t.runProgram

	return t
}

// DisplayFunctions renders the functions as a styled list.
func (t *TUI) DisplayFunctions(index m.FunctionIndex) error {
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1)

	rows := make([]string, 0, len(index.Display))
	for _, line := range sortedLines(index.Display) {
		rows = append(rows, fmt.Sprintf("%s  %s", lineStyle.Render(fmt.Sprintf("%d", line)), nameStyle.Render(index.Display[line])))
	}

	if len(rows) == 0 {
		rows = append(rows, "no functions found")
	}

	_, _ = fmt.Fprintln(t.output, box.Render(strings.Join(rows, "\n")))

	return nil
}

// PickFunction runs the interactive picker.
func (t *TUI) PickFunction(index m.FunctionIndex) (int, error) {
	final, err := t.run(newPickerModel("Choose which function to fuzz", index))
	if err != nil {
		return 0, fmt.Errorf("function picker failed: %w", err)
	}

	picked, ok := final.(pickerModel)
	if !ok || picked.cancelled || picked.chosen == 0 {
		return 0, ErrPickCancelled
	}

	return picked.chosen, nil
}

func (t *TUI) runProgram(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(t.input), tea.WithOutput(t.output))

	return program.Run()
}

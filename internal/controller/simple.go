package controller

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/consept/internal/model"
)

// SimpleUI implements UI with line prompts on the command's streams.
type SimpleUI struct {
	cmd *cobra.Command
	in  *bufio.Reader
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Println writes a line to the command output.
func (s *SimpleUI) Println(a ...any) {
	_, _ = fmt.Fprintln(s.cmd.OutOrStdout(), a...)
}

// Prompt reads one line from the command input. A final line without a
// terminator is still returned; only an empty read yields io.EOF.
func (s *SimpleUI) Prompt(label string) (string, error) {
	s.printf("%s", label)

	if s.in == nil {
		s.in = bufio.NewReader(s.cmd.InOrStdin())
	}

	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// DisplayVariables prints a Line/Variable table.
func (s *SimpleUI) DisplayVariables(index m.VariableIndex) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Line", "Variable"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, line := range sortedLines(index) {
		table.Append([]string{strconv.Itoa(line), index[line]})
	}

	table.SetFooter([]string{"Total", strconv.Itoa(len(index))})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayFunctions prints a Line/Function/Params table.
func (s *SimpleUI) DisplayFunctions(index m.FunctionIndex) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Line", "Function", "Params"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, line := range sortedLines(index.Display) {
		table.Append([]string{
			strconv.Itoa(line),
			index.Display[line],
			strconv.Itoa(index.Details[line].ParamCount()),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// PickFunction prints the functions and reads one line number. An answer
// that is not a number yields line 0, which never names a declaration.
func (s *SimpleUI) PickFunction(index m.FunctionIndex) (int, error) {
	s.Println("\nChoose which function to fuzz:")

	if err := s.DisplayFunctions(index); err != nil {
		return 0, err
	}

	answer, err := s.Prompt("Enter your choice (only one line number): ")
	if err != nil {
		return 0, err
	}

	line, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, nil
	}

	return line, nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

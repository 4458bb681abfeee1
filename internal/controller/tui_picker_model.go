package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/consept/internal/model"
)

type functionItem struct {
	line    int
	display string
	params  int
}

func (f functionItem) FilterValue() string {
	return f.display
}

type functionDelegate struct{}

func (d functionDelegate) Height() int  { return 1 }
func (d functionDelegate) Spacing() int { return 0 }
func (d functionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d functionDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	fn, ok := item.(functionItem)
	if !ok {
		return
	}

	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	if index == lm.Index() {
		lineStyle = lineStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
		nameStyle = nameStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	// Functions without parameters cannot be fuzzed.
	if fn.params == 0 {
		nameStyle = nameStyle.Faint(true)
	}

	width := lm.Width() - 8

	_, _ = fmt.Fprintf(w, "%s  %s",
		lineStyle.Render(fmt.Sprintf("%d", fn.line)),
		nameStyle.Render(truncateToWidth(fn.display, width)),
	)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// pickerModel lets the user choose one function by its declaration line.
type pickerModel struct {
	title     string
	functions list.Model
	chosen    int
	cancelled bool
}

func newPickerModel(title string, index m.FunctionIndex) pickerModel {
	items := make([]list.Item, 0, len(index.Display))
	for _, line := range sortedLines(index.Display) {
		items = append(items, functionItem{
			line:    line,
			display: index.Display[line],
			params:  index.Details[line].ParamCount(),
		})
	}

	functions := list.New(items, functionDelegate{}, 80, 20)
	functions.SetShowPagination(false)
	functions.SetShowHelp(false)
	functions.SetShowTitle(false)
	functions.SetShowStatusBar(false)
	functions.FilterInput.Placeholder = "Filter by name…"

	return pickerModel{title: title, functions: functions}
}

func (pm pickerModel) Init() tea.Cmd {
	return nil
}

func (pm pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.functions.SetSize(msg.Width-4, max(msg.Height-6, 5))

		return pm, nil

	case tea.KeyMsg:
		filtering := pm.functions.FilterState() == list.Filtering

		switch msg.String() {
		case "ctrl+c":
			pm.cancelled = true
			return pm, tea.Quit
		case "q", "esc":
			if !filtering {
				pm.cancelled = true
				return pm, tea.Quit
			}
		case "enter":
			if !filtering {
				if fn, ok := pm.functions.SelectedItem().(functionItem); ok {
					pm.chosen = fn.line
					return pm, tea.Quit
				}
			}
		}
	}

	var cmd tea.Cmd

	pm.functions, cmd = pm.functions.Update(msg)

	return pm, cmd
}

func (pm pickerModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 0, 0, 2)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(pm.title),
		box.Render(pm.functions.View()),
		footerStyle.Render("↑/k up • ↓/j down • / filter • enter choose • q quit"),
	)
}

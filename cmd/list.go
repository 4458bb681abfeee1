package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/consept/internal/domain"
	m "github.com/mouse-blink/consept/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file.cpp>",
		Short: "List functions and annotatable variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{Source: m.Path(args[0])})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

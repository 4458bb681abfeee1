package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/consept/internal/domain"
	m "github.com/mouse-blink/consept/internal/model"
)

var harnessOutputFlag string

// harnessCmd represents the harness command.
var harnessCmd = newHarnessCmd()

func newHarnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harness <file.cpp>",
		Short: "Write fuzz harnesses without running them",
		Long: `Write one libFuzzer target per function with parameters. Targets are
named <file>_<function>_<line>_fuzz.cpp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := workflow.Harness(cmd.Context(), domain.HarnessArgs{
				Source:    m.Path(args[0]),
				OutputDir: m.Path(harnessOutputFlag),
			})

			return err
		},
	}
	cmd.Flags().StringVarP(&harnessOutputFlag, "output", "o", "", "output directory (default <workspace>/tmp/fuzz/harness)")

	return cmd
}

func init() {
	rootCmd.AddCommand(harnessCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/consept/internal/domain"
	m "github.com/mouse-blink/consept/internal/model"
)

var saveTestsFlag bool
var testsDirFlag string
var reportsDirFlag string
var concolicShowDiffFlag bool

// concolicCmd represents the concolic command.
var concolicCmd = newConcolicCmd()

func newConcolicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concolic <compile_commands.json>",
		Short: "Run KLEE on the annotated entry function",
		Long: `Annotate local variables of the entry function as symbolic, compile the
source named by the first compile_commands.json entry to bitcode and run
KLEE on it. Every fault is printed with the inputs that caused it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Concolic(cmd.Context(), domain.ConcolicArgs{
				CompileDB: m.Path(args[0]),
				TimeLimit: cfg.Concolic.TimeLimit,
				SaveTests: saveTestsFlag,
				TestsDir:  m.Path(testsDirFlag),
				ReportDir: m.Path(reportsDirFlag),
				ShowDiff:  concolicShowDiffFlag,
			})
		},
	}
	cmd.Flags().IntP("time-limit", "t", 3600, "maximum KLEE run time in seconds")
	cmd.Flags().BoolVarP(&saveTestsFlag, "save-tests", "s", false, "save the generated tests to a file")
	cmd.Flags().StringVar(&testsDirFlag, "tests-dir", ".", "directory receiving saved tests")
	cmd.Flags().StringVarP(&reportsDirFlag, "reports", "r", "", "directory receiving YAML fault reports")
	cmd.Flags().BoolVar(&concolicShowDiffFlag, "show-diff", false, "print the annotations as a diff")

	return cmd
}

func init() {
	rootCmd.AddCommand(concolicCmd)
}

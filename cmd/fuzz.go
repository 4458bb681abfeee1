package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/consept/internal/domain"
	m "github.com/mouse-blink/consept/internal/model"
)

var fuzzShowDiffFlag bool

// fuzzCmd represents the fuzz command.
var fuzzCmd = newFuzzCmd()

func newFuzzCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fuzz <file.cpp>",
		Short: "Fuzz one function with libFuzzer",
		Long: `Pick a function that takes parameters, append a libFuzzer harness for it,
comment out the entry function and run the fuzzer. A bare file name is
searched for around the working directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Fuzz(cmd.Context(), domain.FuzzArgs{
				Source:    m.Path(args[0]),
				Sanitizer: m.Sanitizer(cfg.Fuzz.Sanitizer),
				Runs:      cfg.Fuzz.Runs,
				ShowDiff:  fuzzShowDiffFlag,
			})
		},
	}
	cmd.Flags().String("sanitizer", string(m.SanitizerAddress), "sanitizer (address or memory)")
	cmd.Flags().Int("runs", 1000, "number of fuzzer runs")
	cmd.Flags().BoolVar(&fuzzShowDiffFlag, "show-diff", false, "print the harness as a diff")

	return cmd
}

func init() {
	rootCmd.AddCommand(fuzzCmd)
}

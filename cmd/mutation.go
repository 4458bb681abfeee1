package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/consept/internal/domain"
	m "github.com/mouse-blink/consept/internal/model"
)

// mutationCmd represents the mutation command.
var mutationCmd = newMutationCmd()

func newMutationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutation <CMakeLists.txt>",
		Short: "Run Dextool mutation testing on a CMake project",
		Long: `Add googletest to the project's CMakeLists.txt, configure Dextool and run it
in the mutation container with the project mounted at its own path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Mutation(cmd.Context(), domain.MutationArgs{CMakeLists: m.Path(args[0])})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mutationCmd)
}

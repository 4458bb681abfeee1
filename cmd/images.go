package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/consept/internal/domain"
	m "github.com/mouse-blink/consept/internal/model"
)

var imagesProjectFlag string

// imagesCmd represents the images command.
var imagesCmd = newImagesCmd()

func newImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images [tools...]",
		Short: "Build the tool images",
		Long: `Build the images of the given tools (concolic, fuzz, mutation), or of all
of them. The mutation image needs --project.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools := make([]m.Tool, 0, len(args))

			for _, arg := range args {
				tool, err := m.ParseTool(arg)
				if err != nil {
					return err
				}

				tools = append(tools, tool)
			}

			project := imagesProjectFlag
			if project != "" {
				abs, err := filepath.Abs(project)
				if err != nil {
					return err
				}

				project = abs
			}

			return workflow.PrepareImages(cmd.Context(), domain.ImagesArgs{
				Tools:   tools,
				Project: m.Path(project),
				Rebuild: cfg.RebuildImages,
			})
		},
	}
	cmd.Flags().StringVar(&imagesProjectFlag, "project", "", "user project baked into the mutation image")

	return cmd
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}

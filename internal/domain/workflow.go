package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/consept/internal/adapter"
	"github.com/mouse-blink/consept/internal/controller"
	m "github.com/mouse-blink/consept/internal/model"
)

// ErrMissingProject is returned when the mutation image is requested
// without a user project.
var ErrMissingProject = errors.New("mutation image needs a user project")

// Workflow defines the operations behind the consept commands.
type Workflow interface {
	Concolic(ctx context.Context, args ConcolicArgs) error
	Fuzz(ctx context.Context, args FuzzArgs) error
	Harness(ctx context.Context, args HarnessArgs) ([]m.Path, error)
	Mutation(ctx context.Context, args MutationArgs) error
	List(ctx context.Context, args ListArgs) error
	PrepareImages(ctx context.Context, args ImagesArgs) error
}

// Settings carries the resolved configuration used by the workflows.
type Settings struct {
	// Workspace holds the tmp/<tool> mount folders.
	Workspace string
	// Dockerfiles holds one <tool>/Dockerfile build context per tool.
	Dockerfiles    string
	EntryFunction  string
	FaultPrefix    string
	Images         map[string]string
	RebuildImages  bool
	KeepContainers bool
	Now            func() time.Time
}

func (s Settings) imageName(tool m.Tool) string {
	if name := s.Images[string(tool)]; name != "" {
		return name
	}

	return tool.ImageName()
}

func (s Settings) entry() string {
	if s.EntryFunction == "" {
		return DefaultEntryFunction
	}

	return s.EntryFunction
}

// Adapters groups the infrastructure used by the workflows.
type Adapters struct {
	FS         adapter.SourceFSAdapter
	Parser     adapter.CppFileAdapter
	CompileDB  adapter.CompileDBAdapter
	ToolConfig adapter.ToolConfigAdapter
	Containers adapter.ContainerAdapter
	Reports    adapter.ReportStore
}

// ListArgs selects the source listed by List.
type ListArgs struct {
	Source m.Path
}

// ImagesArgs selects the tool images built by PrepareImages.
type ImagesArgs struct {
	Tools []m.Tool
	// Project is the user project baked into the mutation image.
	Project m.Path
	Rebuild bool
}

type workflow struct {
	Adapters

	settings Settings
	ui       controller.UI
	logger   logrus.FieldLogger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(settings Settings, adapters Adapters, ui controller.UI, logger logrus.FieldLogger) Workflow {
	return &workflow{
		Adapters: adapters,
		settings: settings,
		ui:       ui,
		logger:   logger,
	}
}

// List prints the functions and the annotatable variables of a source.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	_, tu, err := w.parseSource(ctx, args.Source)
	if err != nil {
		return err
	}

	w.ui.Println("Functions:")

	if err := w.ui.DisplayFunctions(IndexFunctions(tu, w.settings.entry())); err != nil {
		return err
	}

	w.ui.Println(fmt.Sprintf("\nVariables of %s:", w.settings.entry()))

	return w.ui.DisplayVariables(IndexLocalVariables(tu, w.settings.entry()))
}

// PrepareImages builds the images of several tools concurrently. Without
// explicit tools the mutation image is only built when a project is given.
func (w *workflow) PrepareImages(ctx context.Context, args ImagesArgs) error {
	tools := args.Tools
	if len(tools) == 0 {
		for _, tool := range m.AllTools {
			if tool != m.ToolMutation || args.Project != "" {
				tools = append(tools, tool)
			}
		}
	}

	specs := make([]m.ImageSpec, 0, len(tools))

	for _, tool := range tools {
		spec, err := w.imageSpec(tool, args.Project)
		if err != nil {
			return err
		}

		specs = append(specs, spec)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(m.AllTools))

	for _, spec := range specs {
		g.Go(func() error {
			return w.Containers.EnsureImage(gctx, spec, args.Rebuild || w.settings.RebuildImages)
		})
	}

	return g.Wait()
}

func (w *workflow) imageSpec(tool m.Tool, project m.Path) (m.ImageSpec, error) {
	spec := m.ImageSpec{
		Tool:       tool,
		Name:       w.settings.imageName(tool),
		Dockerfile: w.FS.JoinPath(w.settings.Dockerfiles, string(tool)),
	}

	if tool != m.ToolMutation {
		return spec, nil
	}

	if project == "" {
		return m.ImageSpec{}, ErrMissingProject
	}

	projectPath := filepath.ToSlash(string(project))

	spec.BuildArgs = map[string]string{
		"USER_PROJECT_PATH":             projectPath,
		"EDITED_USER_PROJECT_PATH":      editedProjectParent + "/" + filepath.Base(projectPath),
		"MOUNTED_MUTATION_FOLDER":       m.ToolMutation.ContainerDir(),
		"PARENT_FOLDER_OF_USER_PROJECT": editedProjectParent,
	}

	return spec, nil
}

func (w *workflow) ensureImage(ctx context.Context, tool m.Tool, project m.Path) error {
	spec, err := w.imageSpec(tool, project)
	if err != nil {
		return err
	}

	return w.Containers.EnsureImage(ctx, spec, w.settings.RebuildImages)
}

func (w *workflow) toolHandler(tool m.Tool) *ToolHandler {
	return NewToolHandler(tool, w.settings, w.FS, w.Containers, w.logger)
}

func (w *workflow) parseSource(ctx context.Context, path m.Path) (m.Lines, *m.TranslationUnit, error) {
	content, err := w.FS.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	tu, err := w.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, nil, err
	}

	return m.SplitLines(string(content)), tu, nil
}

package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/consept/internal/adapter"
	adaptermocks "github.com/mouse-blink/consept/internal/adapter/mocks"
	uimocks "github.com/mouse-blink/consept/internal/controller/mocks"
	m "github.com/mouse-blink/consept/internal/model"
)

const mainSource = `#include "helper.h"

void fill(char buf[8], int n) { buf[0] = n; }

int reset() { return 0; }

int main() {
  int x = 5;
  int y = 10;
  { int x = 2; }
  int z = y / x;
}
`

type workflowFixture struct {
	root       string
	workspace  string
	dockerDir  string
	project    string
	source     m.Path
	parser     *adaptermocks.MockCppFileAdapter
	compileDB  *adaptermocks.MockCompileDBAdapter
	containers *adaptermocks.MockContainerAdapter
	reports    *adaptermocks.MockReportStore
	ui         *uimocks.MockUI
	hook       *test.Hook
	settings   Settings
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	root := t.TempDir()
	f := &workflowFixture{
		root:       root,
		workspace:  filepath.Join(root, "ws"),
		dockerDir:  filepath.Join(root, "docker"),
		project:    filepath.Join(root, "project"),
		parser:     adaptermocks.NewMockCppFileAdapter(t),
		compileDB:  adaptermocks.NewMockCompileDBAdapter(t),
		containers: adaptermocks.NewMockContainerAdapter(t),
		reports:    adaptermocks.NewMockReportStore(t),
		ui:         uimocks.NewMockUI(t),
	}

	require.NoError(t, os.MkdirAll(f.project, 0o750))

	f.source = m.Path(filepath.Join(f.project, "main.cpp"))
	require.NoError(t, os.WriteFile(string(f.source), []byte(mainSource), 0o600))

	f.settings = Settings{
		Workspace:     f.workspace,
		Dockerfiles:   f.dockerDir,
		EntryFunction: DefaultEntryFunction,
		FaultPrefix:   DefaultFaultPrefix,
		Now:           fixedNow,
	}

	return f
}

func (f *workflowFixture) workflow() Workflow {
	fs := adapter.NewLocalSourceFSAdapter()
	logger, hook := test.NewNullLogger()
	f.hook = hook

	return NewWorkflow(f.settings, Adapters{
		FS:         fs,
		Parser:     f.parser,
		CompileDB:  f.compileDB,
		ToolConfig: adapter.NewTOMLConfigAdapter(fs),
		Containers: f.containers,
		Reports:    f.reports,
	}, f.ui, logger)
}

func (f *workflowFixture) expectParse() {
	f.parser.On("Parse", mock.Anything, f.source, []byte(mainSource)).Return(sampleUnit(), nil)
}

func (f *workflowFixture) mountDir(tool m.Tool) string {
	return filepath.Join(f.workspace, "tmp", string(tool))
}

func commandIs(command string) any {
	return mock.MatchedBy(func(spec m.RunSpec) bool { return spec.Command == command })
}

func TestWorkflow_List(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.expectParse()

	f.ui.On("Println", "Functions:").Return().Once()
	f.ui.On("DisplayFunctions", mock.MatchedBy(func(index m.FunctionIndex) bool {
		return len(index.Details) == 2 && index.Display[3] == "fill void (char *, int)"
	})).Return(nil).Once()
	f.ui.On("Println", "\nVariables of main:").Return().Once()
	f.ui.On("DisplayVariables", m.VariableIndex{9: "y", 11: "z"}).Return(nil).Once()

	require.NoError(t, f.workflow().List(context.Background(), ListArgs{Source: f.source}))
}

func TestWorkflow_List_ParseError(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	parseErr := errors.New("syntax error")
	f.parser.On("Parse", mock.Anything, f.source, mock.Anything).Return(nil, parseErr)

	err := f.workflow().List(context.Background(), ListArgs{Source: f.source})
	assert.ErrorIs(t, err, parseErr)
}

func TestWorkflow_List_MissingSource(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	err := f.workflow().List(context.Background(), ListArgs{Source: m.Path(filepath.Join(f.project, "absent.cpp"))})
	assert.Error(t, err)
}

func TestWorkflow_PrepareImages(t *testing.T) {
	t.Parallel()

	t.Run("builds every tool", func(t *testing.T) {
		t.Parallel()

		f := newWorkflowFixture(t)
		f.settings.Images = map[string]string{"fuzz": "registry.local/fuzz:dev"}

		f.containers.On("EnsureImage", mock.Anything, m.ImageSpec{
			Tool:       m.ToolConcolic,
			Name:       "image_consept_concolic",
			Dockerfile: m.Path(filepath.Join(f.dockerDir, "concolic")),
		}, true).Return(nil).Once()
		f.containers.On("EnsureImage", mock.Anything, m.ImageSpec{
			Tool:       m.ToolFuzz,
			Name:       "registry.local/fuzz:dev",
			Dockerfile: m.Path(filepath.Join(f.dockerDir, "fuzz")),
		}, true).Return(nil).Once()
		f.containers.On("EnsureImage", mock.Anything, m.ImageSpec{
			Tool:       m.ToolMutation,
			Name:       "image_consept_mutation",
			Dockerfile: m.Path(filepath.Join(f.dockerDir, "mutation")),
			BuildArgs: map[string]string{
				"USER_PROJECT_PATH":             "/home/me/demo",
				"EDITED_USER_PROJECT_PATH":      "/editedUserProject/demo",
				"MOUNTED_MUTATION_FOLDER":       "/home/consept/tmp/mutation",
				"PARENT_FOLDER_OF_USER_PROJECT": "/editedUserProject",
			},
		}, true).Return(nil).Once()

		err := f.workflow().PrepareImages(context.Background(), ImagesArgs{Project: "/home/me/demo", Rebuild: true})
		require.NoError(t, err)
	})

	t.Run("mutation needs a project", func(t *testing.T) {
		t.Parallel()

		f := newWorkflowFixture(t)

		err := f.workflow().PrepareImages(context.Background(), ImagesArgs{Tools: []m.Tool{m.ToolMutation}})
		assert.ErrorIs(t, err, ErrMissingProject)
	})

	t.Run("build failure is returned", func(t *testing.T) {
		t.Parallel()

		f := newWorkflowFixture(t)
		f.settings.RebuildImages = true

		buildErr := errors.New("no space left on device")
		f.containers.On("EnsureImage", mock.Anything, mock.Anything, true).Return(buildErr).Once()

		err := f.workflow().PrepareImages(context.Background(), ImagesArgs{Tools: []m.Tool{m.ToolFuzz}})
		assert.ErrorIs(t, err, buildErr)
	})
}

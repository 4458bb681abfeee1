package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/consept/internal/adapter"
	adaptermocks "github.com/mouse-blink/consept/internal/adapter/mocks"
	m "github.com/mouse-blink/consept/internal/model"
)

const cmakeLists = "cmake_minimum_required(VERSION 3.14)\nproject(demo)\nadd_executable(demo main.cpp)\n"

func TestAnnotateCMakeLists(t *testing.T) {
	t.Parallel()

	t.Run("inserts after the project line", func(t *testing.T) {
		t.Parallel()

		got, changed := AnnotateCMakeLists(cmakeLists)
		require.True(t, changed)

		want := "cmake_minimum_required(VERSION 3.14)\nproject(demo)\n\n" +
			strings.Join(GoogleTestBlock, "\n") + "\n" +
			"add_executable(demo main.cpp)\n"
		assert.Equal(t, want, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		once, _ := AnnotateCMakeLists(cmakeLists)
		twice, changed := AnnotateCMakeLists(once)

		assert.False(t, changed)
		assert.Equal(t, once, twice)
	})

	t.Run("project on the last line", func(t *testing.T) {
		t.Parallel()

		got, changed := AnnotateCMakeLists("project(demo)")
		require.True(t, changed)
		assert.True(t, strings.HasPrefix(got, "project(demo)\n\nenable_testing()\n"))
	})

	t.Run("no project line", func(t *testing.T) {
		t.Parallel()

		got, changed := AnnotateCMakeLists("add_library(x x.cpp)\n")
		assert.False(t, changed)
		assert.Equal(t, "add_library(x x.cpp)\n", got)
	})
}

func TestConfigureDextool(t *testing.T) {
	t.Parallel()

	doc := ConfigureDextool(map[string]any{
		"workarea": map[string]any{"root": "/old", "restrict": []any{"src"}},
		"compiler": map[string]any{"extra_flags": []any{"-DX"}},
	})

	assert.Equal(t, map[string]any{
		"workarea": map[string]any{"root": ".", "restrict": []any{"src"}},
		"compiler": map[string]any{"extra_flags": []any{"-DX"}},
		"database": map[string]any{"db": "dextool_mutate.sqlite3"},
		"analyze":  map[string]any{"exclude": []any{"test/*"}},
	}, doc)

	empty := ConfigureDextool(nil)
	assert.Len(t, empty, 3)
}

func TestWorkflow_Mutation(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	mount := f.mountDir(m.ToolMutation)
	toolDir := filepath.Join(f.dockerDir, "mutation")
	cmake := filepath.Join(f.project, "CMakeLists.txt")

	require.NoError(t, os.MkdirAll(toolDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(toolDir, "dextool_config.toml"),
		[]byte("[workarea]\nroot = \"/old\"\n\n[compiler]\nextra_flags = [\"-DX\"]\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(toolDir, "run_dextool.sh"), []byte("#!/bin/bash\ndextool mutate admin\n"), 0o700))
	require.NoError(t, os.WriteFile(cmake, []byte(cmakeLists), 0o600))

	projectPath := filepath.ToSlash(f.project)

	f.containers.On("EnsureImage", mock.Anything, m.ImageSpec{
		Tool:       m.ToolMutation,
		Name:       "image_consept_mutation",
		Dockerfile: m.Path(toolDir),
		BuildArgs: map[string]string{
			"USER_PROJECT_PATH":             projectPath,
			"EDITED_USER_PROJECT_PATH":      "/editedUserProject/project",
			"MOUNTED_MUTATION_FOLDER":       "/home/consept/tmp/mutation",
			"PARENT_FOLDER_OF_USER_PROJECT": "/editedUserProject",
		},
	}, false).Return(nil).Once()
	f.containers.On("Run", mock.Anything, mock.MatchedBy(func(spec m.RunSpec) bool {
		return spec.Command == "bash /home/consept/tmp/mutation/run_dextool.sh" &&
			len(spec.Mounts) == 2 &&
			spec.Mounts[0].Source == mount &&
			spec.Mounts[1] == m.Mount{Source: f.project, Target: projectPath}
	})).Return([]byte("Mutation score: 0.8\n"), nil).Once()
	f.ui.On("Println", "Mutation score: 0.8\n").Return().Once()

	require.NoError(t, f.workflow().Mutation(context.Background(), MutationArgs{CMakeLists: m.Path(cmake)}))

	annotated, err := os.ReadFile(cmake)
	require.NoError(t, err)
	assert.Contains(t, string(annotated), "FetchContent_MakeAvailable(googletest)")

	fs := adapter.NewLocalSourceFSAdapter()
	doc, err := adapter.NewTOMLConfigAdapter(fs).Load(m.Path(filepath.Join(mount, ".dextool_mutate.toml")))
	require.NoError(t, err)
	assert.Equal(t, ".", doc["workarea"].(map[string]any)["root"])
	assert.Equal(t, "dextool_mutate.sqlite3", doc["database"].(map[string]any)["db"])
	assert.Equal(t, []any{"-DX"}, doc["compiler"].(map[string]any)["extra_flags"])

	script, err := os.ReadFile(filepath.Join(mount, "run_dextool.sh"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\ndextool mutate admin\n", string(script))
}

func TestWorkflow_Mutation_RequiresCMakeLists(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	err := f.workflow().Mutation(context.Background(), MutationArgs{CMakeLists: f.source})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a CMakeLists.txt")
}

func TestWorkflow_Mutation_DextoolConfigErrors(t *testing.T) {
	t.Parallel()

	configErr := errors.New("permission denied")

	tests := []struct {
		name   string
		expect func(cfg *adaptermocks.MockToolConfigAdapter, template, target m.Path)
		want   string
	}{
		{
			name: "template load",
			expect: func(cfg *adaptermocks.MockToolConfigAdapter, template, _ m.Path) {
				cfg.On("Load", template).Return(nil, configErr).Once()
			},
			want: "permission denied",
		},
		{
			name: "config save",
			expect: func(cfg *adaptermocks.MockToolConfigAdapter, template, target m.Path) {
				cfg.On("Load", template).Return(map[string]any{"workarea": map[string]any{"root": "/old"}}, nil).Once()
				cfg.On("Save", target, mock.MatchedBy(func(doc map[string]any) bool {
					return doc["workarea"].(map[string]any)["root"] == "." &&
						doc["database"].(map[string]any)["db"] == "dextool_mutate.sqlite3"
				})).Return(configErr).Once()
			},
			want: "failed to write dextool config: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newWorkflowFixture(t)
			cmake := filepath.Join(f.project, "CMakeLists.txt")
			require.NoError(t, os.WriteFile(cmake, []byte(cmakeLists), 0o600))

			toolConfig := adaptermocks.NewMockToolConfigAdapter(t)
			tt.expect(toolConfig,
				m.Path(filepath.Join(f.dockerDir, "mutation", "dextool_config.toml")),
				m.Path(filepath.Join(f.mountDir(m.ToolMutation), ".dextool_mutate.toml")))

			logger, _ := test.NewNullLogger()
			w := NewWorkflow(f.settings, Adapters{
				FS:         adapter.NewLocalSourceFSAdapter(),
				ToolConfig: toolConfig,
				Containers: f.containers,
			}, f.ui, logger)

			err := w.Mutation(context.Background(), MutationArgs{CMakeLists: m.Path(cmake)})
			require.ErrorIs(t, err, configErr)
			assert.EqualError(t, err, tt.want)
		})
	}
}

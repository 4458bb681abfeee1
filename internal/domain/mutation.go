package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

const (
	cmakeListsName      = "CMakeLists.txt"
	dextoolTemplate     = "dextool_config.toml"
	dextoolConfig       = ".dextool_mutate.toml"
	dextoolScript       = "run_dextool.sh"
	dextoolDatabase     = "dextool_mutate.sqlite3"
	editedProjectParent = "/editedUserProject"
)

// GoogleTestBlock is inserted after the project() line of a CMakeLists.txt
// so the relocated project links against googletest.
var GoogleTestBlock = []string{
	"enable_testing()",
	"set(CMAKE_CXX_STANDARD 14)",
	"set(CMAKE_CXX_STANDARD_REQUIRED ON)",
	"",
	"include(FetchContent)",
	"FetchContent_Declare(",
	"   googletest",
	"   URL https://github.com/google/googletest/archive/03597a01ee50ed33e9dfd640b249b4be3799d395.zip)",
	"FetchContent_MakeAvailable(googletest)",
	"",
	"find_package(GTest REQUIRED)",
	"include_directories(${GTEST_INCLUDE_DIRS})",
}

// MutationArgs configures a Dextool run.
type MutationArgs struct {
	CMakeLists m.Path
}

// AnnotateCMakeLists inserts GoogleTestBlock after the first line containing
// "project(". It reports false when the block is already present or there
// is no project line.
func AnnotateCMakeLists(text string) (string, bool) {
	if strings.Contains(text, "FetchContent_MakeAvailable(googletest)") {
		return text, false
	}

	lines := m.SplitLines(text)

	for i, line := range lines {
		if !strings.Contains(line, "project(") {
			continue
		}

		var sb strings.Builder

		sb.WriteString(lines[:i+1].String())

		if !strings.HasSuffix(line, "\n") {
			sb.WriteString("\n")
		}

		sb.WriteString("\n")

		for _, item := range GoogleTestBlock {
			sb.WriteString(item + "\n")
		}

		sb.WriteString(lines[i+1:].String())

		return sb.String(), true
	}

	return text, false
}

// ConfigureDextool points the Dextool configuration at the mounted project.
// Missing tables are created.
func ConfigureDextool(doc map[string]any) map[string]any {
	if doc == nil {
		doc = map[string]any{}
	}

	table(doc, "workarea")["root"] = "."
	table(doc, "database")["db"] = dextoolDatabase
	table(doc, "analyze")["exclude"] = []any{"test/*"}

	return doc
}

func table(doc map[string]any, name string) map[string]any {
	if t, ok := doc[name].(map[string]any); ok {
		return t
	}

	t := map[string]any{}
	doc[name] = t

	return t
}

// Mutation prepares the user project for Dextool and runs the mutation
// container with the project mounted at its own path.
func (w *workflow) Mutation(ctx context.Context, args MutationArgs) error {
	if filepath.Base(string(args.CMakeLists)) != cmakeListsName {
		return fmt.Errorf("expected a %s, got %s", cmakeListsName, args.CMakeLists)
	}

	cmakeLists, err := filepath.Abs(string(args.CMakeLists))
	if err != nil {
		return err
	}

	project := m.Path(filepath.Dir(cmakeLists))

	content, err := w.FS.ReadFile(m.Path(cmakeLists))
	if err != nil {
		return err
	}

	if annotated, changed := AnnotateCMakeLists(string(content)); changed {
		if err := w.FS.WriteFile(m.Path(cmakeLists), []byte(annotated), 0o644); err != nil {
			return fmt.Errorf("failed to annotate %s: %w", cmakeListsName, err)
		}
	}

	handler := w.toolHandler(m.ToolMutation)
	if err := handler.Ensure(); err != nil {
		return err
	}

	if err := w.writeDextoolFiles(handler); err != nil {
		return err
	}

	if err := w.ensureImage(ctx, m.ToolMutation, project); err != nil {
		return err
	}

	out, err := handler.Exec(ctx, "bash "+handler.ContainerPath(dextoolScript),
		m.Mount{Source: string(project), Target: filepath.ToSlash(string(project))})
	if err != nil {
		return err
	}

	w.ui.Println(string(out))

	return nil
}

func (w *workflow) writeDextoolFiles(handler *ToolHandler) error {
	toolDir := w.FS.JoinPath(w.settings.Dockerfiles, string(m.ToolMutation))

	doc, err := w.ToolConfig.Load(w.FS.JoinPath(string(toolDir), dextoolTemplate))
	if err != nil {
		return err
	}

	if err := w.ToolConfig.Save(handler.MountPath(dextoolConfig), ConfigureDextool(doc)); err != nil {
		return fmt.Errorf("failed to write dextool config: %w", err)
	}

	script := w.FS.JoinPath(string(toolDir), dextoolScript)
	if _, err := w.FS.FileInfo(script); err != nil {
		w.logger.WithField("path", script).Debug("no dextool script to copy")
		return nil
	}

	return w.FS.CopyFile(script, handler.MountPath(dextoolScript))
}

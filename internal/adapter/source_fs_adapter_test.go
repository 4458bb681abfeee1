package adapter

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	m "github.com/mouse-blink/consept/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.cpp"), "int main() {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.cpp"), "int f() { return 1; }\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.cpp")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.cpp")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.cpp")
		writeTestFile(t, child, "int f() { return 1; }\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("returns contents", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "main.cpp")
		content := "#include <iostream>\n" + "int main() { return 0; }\n"
		writeTestFile(t, path, content)

		got, err := adapter.ReadFile(m.Path(path))
		require.NoError(t, err)

		assert.Equal(t, content, string(got))
	})

	t.Run("missing file wraps ErrFileNotFound", func(t *testing.T) {
		_, err := adapter.ReadFile(m.Path(filepath.Join(t.TempDir(), "nope.cpp")))
		require.ErrorIs(t, err, ErrFileNotFound)
	})
}

func TestLocalSourceFSAdapter_WriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "sub", "out.cpp")

	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("first\n"), 0o644))
	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("second\n"), 0o644))

	assert.Equal(t, "second\n", string(readFileBytes(t, path)))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.cpp")
	writeTestFile(t, path, "int main() {}\n")

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)

	assert.False(t, info.IsDir(), "FileInfo() reported file as directory")

	dirInfo, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir(), "FileInfo() reported directory as file")
}

func TestLocalSourceFSAdapter_FindFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("finds file in sibling directory", func(t *testing.T) {
		root := t.TempDir()
		build := filepath.Join(root, "build")
		src := filepath.Join(root, "src")
		mustMkdir(t, build)
		mustMkdir(t, src)
		target := filepath.Join(src, "main.cpp")
		writeTestFile(t, target, "int main() {}\n")

		got, err := adapter.FindFile("main.cpp", m.Path(build))
		require.NoError(t, err)
		assert.Equal(t, m.Path(target), got)
	})

	t.Run("missing file", func(t *testing.T) {
		root := t.TempDir()

		_, err := adapter.FindFile("absent.cpp", m.Path(filepath.Join(root, "x")))
		require.ErrorIs(t, err, ErrFileNotFound)
	})
}

func TestLocalSourceFSAdapter_FindFiles(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	out := filepath.Join(root, "klee-out-0")
	mustMkdir(t, out)
	writeTestFile(t, filepath.Join(out, "test000001.ktest"), "")
	writeTestFile(t, filepath.Join(out, "test000002.ktest"), "")
	writeTestFile(t, filepath.Join(out, "messages.txt"), "")

	got, err := adapter.FindFiles(m.Path(root), ".ktest")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, filepath.Base(string(p)))
	}
	sort.Strings(names)

	assert.Equal(t, []string{"test000001.ktest", "test000002.ktest"}, names)
}

func TestLocalSourceFSAdapter_EnsureAndEmptyDir(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := filepath.Join(t.TempDir(), "tmp", "concolic")
	require.NoError(t, adapter.EnsureDir(m.Path(dir)))

	writeTestFile(t, filepath.Join(dir, "old.sh"), "#!/bin/sh\n")
	mustMkdir(t, filepath.Join(dir, "klee-out-0"))

	require.NoError(t, adapter.EmptyDir(m.Path(dir)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalSourceFSAdapter_CopyFileAndRemoveAll(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	src := filepath.Join(t.TempDir(), "main.cpp")
	writeTestFile(t, src, "int main() {}\n")

	dstDir := filepath.Join(t.TempDir(), "mount")
	dst := filepath.Join(dstDir, "main.cpp")

	require.NoError(t, adapter.CopyFile(m.Path(src), m.Path(dst)))
	assert.Equal(t, "int main() {}\n", string(readFileBytes(t, dst)))

	require.ErrorIs(t, adapter.CopyFile(m.Path(src+".missing"), m.Path(dst)), ErrFileNotFound)

	require.NoError(t, adapter.RemoveAll(m.Path(dstDir)))

	_, err := os.Stat(dstDir)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_JoinPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	joined := adapter.JoinPath("/tmp", "consept", "tmp", "fuzz")
	assert.Equal(t, filepath.Join("/tmp", "consept", "tmp", "fuzz"), string(joined))
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return content
}

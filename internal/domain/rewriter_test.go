package domain

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/consept/internal/model"
)

func TestInsertSymbolicAnnotations(t *testing.T) {
	t.Parallel()

	names := m.VariableIndex{1: "x", 2: "y"}

	t.Run("annotates every selected line", func(t *testing.T) {
		t.Parallel()

		lines := m.Lines{"int x = 5;", "int y = 10;"}
		selection, ok := m.SelectFrom(names, []int{1, 2})
		require.True(t, ok)

		got := InsertSymbolicAnnotations(lines, selection, names)

		want := m.Lines{
			"int x = 5;\n",
			"\tklee_make_symbolic(&x, sizeof(x), \"x\");\n",
			"int y = 10;\n",
			"\tklee_make_symbolic(&y, sizeof(y), \"y\");\n",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("InsertSymbolicAnnotations() mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, m.Lines{"int x = 5;", "int y = 10;"}, lines, "input lines must not change")
	})

	t.Run("skips unselected lines", func(t *testing.T) {
		t.Parallel()

		lines := m.SplitLines("int main() {\n\tint x = 5;\n\tint y = 10;\n}\n")
		index := m.VariableIndex{2: "x", 3: "y"}
		selection, ok := m.SelectFrom(index, []int{3})
		require.True(t, ok)

		got := InsertSymbolicAnnotations(lines, selection, index)

		want := m.Lines{
			"int main() {\n",
			"\tint x = 5;\n",
			"\tint y = 10;\n",
			"\tklee_make_symbolic(&y, sizeof(y), \"y\");\n",
			"}\n",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("InsertSymbolicAnnotations() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty selection copies input", func(t *testing.T) {
		t.Parallel()

		lines := m.SplitLines("int x;\n")
		got := InsertSymbolicAnnotations(lines, m.Selection{}, names)

		assert.Equal(t, lines, got)
	})
}

func TestIncludeLibraryOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no include goes on top",
			text: "int main() {}\n",
			want: KleeInclude + "\nint main() {}\n",
		},
		{
			name: "after first include",
			text: "#include <stdio.h>\n#include <vector>\nint main() {}\n",
			want: "#include <stdio.h>\n" + KleeInclude + "\n#include <vector>\nint main() {}\n",
		},
		{
			name: "include on last line",
			text: "#include <stdio.h>",
			want: "#include <stdio.h>\n" + KleeInclude + "\n",
		},
		{
			name: "already present",
			text: KleeInclude + "\nint main() {}\n",
			want: KleeInclude + "\nint main() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IncludeLibraryOnce(tt.text, KleeInclude))
		})
	}
}

func TestIncludeLibraryOnce_Idempotent(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "int main() {}\n", "#include <stdio.h>\nint x;\n"} {
		once := IncludeLibraryOnce(text, KleeInclude)
		twice := IncludeLibraryOnce(once, KleeInclude)

		assert.Equal(t, once, twice)
		assert.Equal(t, 1, strings.Count(twice, KleeInclude))
	}
}

func TestIncludeLibraries(t *testing.T) {
	t.Parallel()

	got := IncludeLibraries("#include <iostream>\nint main() {}\n", FuzzIncludes...)
	got = IncludeLibraries(got, FuzzIncludes...)

	for _, directive := range FuzzIncludes {
		assert.Equal(t, 1, strings.Count(got, directive), directive)
	}

	assert.True(t, strings.HasPrefix(got, "#include <iostream>\n"))
}

func TestExcludeLineRange(t *testing.T) {
	t.Parallel()

	lines := m.SplitLines("int helper();\nint main() {\n  return 0;\n}\n")

	t.Run("comments out range", func(t *testing.T) {
		t.Parallel()

		got, err := ExcludeLineRange(lines, 2, 4)
		require.NoError(t, err)

		want := m.Lines{"int helper();\n", "/*int main() {\n", "  return 0;\n", "}*/ \n"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ExcludeLineRange() mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, "int main() {\n", lines[1], "input lines must not change")
	})

	t.Run("single line", func(t *testing.T) {
		t.Parallel()

		got, err := ExcludeLineRange(lines, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "/*int helper();*/ \n", got[0])
	})

	t.Run("out of bounds", func(t *testing.T) {
		t.Parallel()

		for _, r := range [][2]int{{0, 1}, {3, 2}, {2, 5}} {
			_, err := ExcludeLineRange(lines, r[0], r[1])
			assert.Error(t, err, "range %v", r)
		}
	})
}

func TestDiffPreview(t *testing.T) {
	t.Parallel()

	got := DiffPreview("int x;\nreturn 0;\n", "int x;\nklee();\nreturn 0;\n")

	assert.Equal(t, "  int x;\n+ klee();\n  return 0;\n", got)
}

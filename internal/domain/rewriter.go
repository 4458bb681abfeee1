package domain

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	m "github.com/mouse-blink/consept/internal/model"
)

// KleeInclude is the directive needed by symbolic annotations.
const KleeInclude = "#include <klee/klee.h>"

// FuzzIncludes are the directives needed by a synthesized fuzz harness.
var FuzzIncludes = []string{
	"#include <string.h>",
	"#include <stdint.h>",
	"#include <stddef.h>",
}

// SymbolicAnnotation returns the klee_make_symbolic line for name.
func SymbolicAnnotation(name string) string {
	return fmt.Sprintf("\tklee_make_symbolic(&%s, sizeof(%s), \"%s\");\n", name, name, name)
}

// InsertSymbolicAnnotations returns a copy of lines with a symbolic
// annotation emitted right after every selected declaration line.
func InsertSymbolicAnnotations(lines m.Lines, selection m.Selection, names m.VariableIndex) m.Lines {
	out := make(m.Lines, 0, len(lines)+selection.Len())

	for i, line := range lines {
		out = append(out, line)

		number := i + 1
		if !selection.Has(number) {
			continue
		}

		name, ok := names[number]
		if !ok {
			continue
		}

		if !strings.HasSuffix(line, "\n") {
			out[len(out)-1] = line + "\n"
		}

		out = append(out, SymbolicAnnotation(name))
	}

	return out
}

// IncludeLibraryOnce adds directive to text unless it is already present.
// The directive goes right after the first #include line, or on top when
// there is none.
func IncludeLibraryOnce(text, directive string) string {
	if strings.Contains(text, directive) {
		return text
	}

	pos := strings.Index(text, "#include")
	if pos < 0 {
		return directive + "\n" + text
	}

	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		return text + "\n" + directive + "\n"
	}

	end += pos + 1

	return text[:end] + directive + "\n" + text[end:]
}

// IncludeLibraries applies IncludeLibraryOnce for each directive in order.
func IncludeLibraries(text string, directives ...string) string {
	for _, directive := range directives {
		text = IncludeLibraryOnce(text, directive)
	}

	return text
}

// ExcludeLineRange comments out the lines start..end (1-based, inclusive)
// with one block comment.
func ExcludeLineRange(lines m.Lines, start, end int) (m.Lines, error) {
	if start < 1 || end < start || end > len(lines) {
		return nil, fmt.Errorf("line range %d-%d out of bounds (1-%d)", start, end, len(lines))
	}

	out := lines.Clone()
	out[start-1] = "/*" + out[start-1]
	out[end-1] = strings.TrimRight(out[end-1], " \t\r\n") + "*/ \n"

	return out, nil
}

// DiffPreview renders a line-level diff between before and after, marking
// inserted lines with "+" and removed lines with "-".
func DiffPreview(before, after string) string {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var sb strings.Builder

	for _, d := range diffs {
		var prefix string

		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			prefix = "  "
		}

		for _, line := range m.SplitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

package domain

import (
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

// DefaultEntryFunction is the program entry point of a translation unit.
const DefaultEntryFunction = "main"

var headerExtensions = map[string]struct{}{
	".h":   {},
	".hh":  {},
	".hpp": {},
	".hxx": {},
}

// CollectLocalVariables returns every variable declared directly in the
// entry function, in preorder.
func CollectLocalVariables(tu *m.TranslationUnit, entry string) []m.DeclaredVariable {
	var vars []m.DeclaredVariable

	for node := range tu.Root.Preorder() {
		if node.Kind != m.CursorVarDecl {
			continue
		}

		parent := node.SemanticParent()
		if parent == nil || parent.Kind != m.CursorFunctionDecl || parent.Spelling != entry {
			continue
		}

		vars = append(vars, m.DeclaredVariable{
			Name:              node.Spelling,
			Line:              node.Extent.Start,
			EnclosingFunction: parent.Spelling,
		})
	}

	return vars
}

// IndexLocalVariables maps declaration lines to the names of the entry
// function's local variables. Names declared on more than one line are
// ambiguous and left out entirely.
func IndexLocalVariables(tu *m.TranslationUnit, entry string) m.VariableIndex {
	vars := CollectLocalVariables(tu, entry)

	byLine := make(map[int]string, len(vars))
	for _, v := range vars {
		byLine[v.Line] = v.Name
	}

	occurrences := make(map[string]int, len(byLine))
	for _, name := range byLine {
		occurrences[name]++
	}

	index := make(m.VariableIndex, len(byLine))

	for line, name := range byLine {
		if occurrences[name] == 1 {
			index[line] = name
		}
	}

	return index
}

// IndexFunctions indexes the free functions of tu by declaration line. The
// entry function and declarations read from headers or include directories
// are skipped.
func IndexFunctions(tu *m.TranslationUnit, entry string) m.FunctionIndex {
	index := m.NewFunctionIndex()

	for node := range tu.Root.Preorder() {
		if node.Kind != m.CursorFunctionDecl {
			continue
		}

		if isLibraryLocation(node.File) || node.Spelling == entry {
			continue
		}

		fn := m.FunctionSignature{
			Name:       node.Spelling,
			Line:       node.Line,
			ReturnType: node.Type.Spelling,
		}

		for _, child := range node.Children() {
			if child.Kind != m.CursorParmDecl {
				continue
			}

			fn.Params = append(fn.Params, parameterOf(child.Type))
		}

		index.Add(fn)
	}

	return index
}

// FindEntryRange returns the extent of the first declaration of entry.
func FindEntryRange(tu *m.TranslationUnit, entry string) (m.LineRange, bool) {
	for node := range tu.Root.Preorder() {
		if node.Kind == m.CursorFunctionDecl && node.Spelling == entry {
			return node.Extent, true
		}
	}

	return m.LineRange{}, false
}

func isLibraryLocation(file m.Path) bool {
	if file == "" {
		return true
	}

	if strings.Contains(string(file), "include") {
		return true
	}

	_, header := headerExtensions[strings.ToLower(filepath.Ext(string(file)))]

	return header
}

func parameterOf(t m.TypeInfo) m.Parameter {
	if t.Kind == m.KindConstantArray {
		return m.ArrayParam{Element: t.ElementSpelling, Size: t.ArraySize}
	}

	return m.ScalarParam{Kind: ScalarKindTag(t.Kind)}
}

// ScalarKindTag lower-cases a type kind and strips any namespace or
// enumeration prefix ("std::string" -> "string", "TypeKind.INT" -> "int").
// Function pointer kinds are returned unchanged.
func ScalarKindTag(kind string) string {
	kind = strings.TrimSpace(kind)
	if isFunctionPointer(kind) {
		return kind
	}

	if i := strings.LastIndex(kind, "::"); i >= 0 {
		kind = kind[i+2:]
	}

	if i := strings.LastIndex(kind, "."); i >= 0 {
		kind = kind[i+1:]
	}

	return strings.ToLower(kind)
}

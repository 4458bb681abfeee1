package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	m "github.com/mouse-blink/consept/internal/model"
)

// CppFileAdapter encapsulates C/C++ parsing so the domain layer can index
// declarations while delegating the grammar to an infrastructure component.
type CppFileAdapter interface {
	// Parse builds the declaration tree of filename from src.
	Parse(ctx context.Context, filename m.Path, src []byte) (*m.TranslationUnit, error)
}

// TreeSitterCppAdapter provides a CppFileAdapter backed by the tree-sitter
// C++ grammar.
type TreeSitterCppAdapter struct{}

// NewTreeSitterCppAdapter constructs a TreeSitterCppAdapter.
func NewTreeSitterCppAdapter() *TreeSitterCppAdapter {
	return &TreeSitterCppAdapter{}
}

// Parse maps the syntax tree of src onto translation unit, function,
// parameter and variable declaration cursors. Variables declared anywhere in
// a function body get that function as semantic parent, as block scopes are
// not declaration contexts.
func (a *TreeSitterCppAdapter) Parse(ctx context.Context, filename m.Path, src []byte) (*m.TranslationUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	tu := m.NewTranslationUnit(filename)
	b := &cursorBuilder{src: src, file: filename}
	b.declarations(tree.RootNode(), tu.Root)

	return tu, nil
}

type cursorBuilder struct {
	src  []byte
	file m.Path
}

// declarations visits a declaration list (translation unit, namespace body,
// linkage block) looking for free functions.
func (b *cursorBuilder) declarations(node *sitter.Node, parent *m.Cursor) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)

		switch child.Type() {
		case "function_definition":
			b.function(child, parent)
		case "declaration":
			if fn := functionDeclarator(child.ChildByFieldName("declarator")); fn != nil {
				b.function(child, parent)
			}
		case "namespace_definition", "linkage_specification":
			if body := child.ChildByFieldName("body"); body != nil {
				if body.Type() == "function_definition" || body.Type() == "declaration" {
					b.declarations(child, parent)
				} else {
					b.declarations(body, parent)
				}
			}
		case "declaration_list", "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif":
			b.declarations(child, parent)
		}
	}
}

func (b *cursorBuilder) function(node *sitter.Node, parent *m.Cursor) {
	declarator := node.ChildByFieldName("declarator")

	fn := functionDeclarator(declarator)
	if fn == nil {
		return
	}

	name := fn.ChildByFieldName("declarator")
	if name == nil || name.Type() != "identifier" {
		// Methods and operators are not free functions.
		return
	}

	cursor := parent.AddChild(&m.Cursor{
		Kind:     m.CursorFunctionDecl,
		Spelling: name.Content(b.src),
		File:     b.file,
		Line:     row(name.StartPoint()),
		Extent:   m.LineRange{Start: row(node.StartPoint()), End: row(node.EndPoint())},
		Type: m.TypeInfo{
			Kind:      "functionproto",
			Spelling:  b.qualifiedType(node) + pointerSuffix(declarator),
			ArraySize: -1,
		},
	})

	if params := fn.ChildByFieldName("parameters"); params != nil {
		b.parameters(params, cursor)
	}

	if body := node.ChildByFieldName("body"); body != nil {
		b.locals(body, cursor)
	}
}

func (b *cursorBuilder) parameters(list *sitter.Node, fn *m.Cursor) {
	for i := range int(list.NamedChildCount()) {
		param := list.NamedChild(i)
		if param.Type() != "parameter_declaration" && param.Type() != "optional_parameter_declaration" {
			continue
		}

		declarator := param.ChildByFieldName("declarator")
		if declarator == nil && isVoid(param, b.src) {
			continue
		}

		name := declaratorName(declarator)

		cursor := &m.Cursor{
			Kind:     m.CursorParmDecl,
			Spelling: name.content(b.src),
			File:     b.file,
			Line:     row(param.StartPoint()),
			Extent:   m.LineRange{Start: row(param.StartPoint()), End: row(param.EndPoint())},
			Type:     b.declaredType(param, declarator),
		}
		if name.node != nil {
			cursor.Line = row(name.node.StartPoint())
		}

		fn.AddChild(cursor)
	}
}

// locals collects variable declarations of a function body. Lambdas and
// local classes introduce their own declaration contexts and are skipped.
func (b *cursorBuilder) locals(node *sitter.Node, fn *m.Cursor) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)

		switch child.Type() {
		case "lambda_expression", "class_specifier", "struct_specifier", "union_specifier":
			continue
		case "declaration":
			b.variables(child, declarators(child), fn)
		case "for_range_loop":
			if d := child.ChildByFieldName("declarator"); d != nil {
				b.variables(child, []*sitter.Node{d}, fn)
			}
		}

		b.locals(child, fn)
	}
}

func (b *cursorBuilder) variables(decl *sitter.Node, list []*sitter.Node, fn *m.Cursor) {
	for _, declarator := range list {
		if functionDeclarator(declarator) != nil {
			continue
		}

		name := declaratorName(declarator)
		if name.node == nil {
			continue
		}

		fn.AddChild(&m.Cursor{
			Kind:     m.CursorVarDecl,
			Spelling: name.content(b.src),
			File:     b.file,
			Line:     row(name.node.StartPoint()),
			Extent:   m.LineRange{Start: row(decl.StartPoint()), End: row(declarator.EndPoint())},
			Type:     b.declaredType(decl, declarator),
		})
	}
}

var declaratorTypes = map[string]struct{}{
	"identifier":               {},
	"init_declarator":          {},
	"pointer_declarator":       {},
	"reference_declarator":     {},
	"array_declarator":         {},
	"function_declarator":      {},
	"parenthesized_declarator": {},
}

// declarators returns the declarators of a declaration, skipping its type
// specifier.
func declarators(decl *sitter.Node) []*sitter.Node {
	typ := decl.ChildByFieldName("type")

	var list []*sitter.Node

	for i := range int(decl.NamedChildCount()) {
		child := decl.NamedChild(i)
		if typ != nil && child.StartByte() == typ.StartByte() {
			continue
		}

		if _, ok := declaratorTypes[child.Type()]; ok {
			list = append(list, child)
		}
	}

	return list
}

// declaredType describes the type of a declarator inside decl.
func (b *cursorBuilder) declaredType(decl, declarator *sitter.Node) m.TypeInfo {
	base := b.typeText(decl.ChildByFieldName("type"))
	qualified := b.qualifiedType(decl)

	d := declarator
	for d != nil && (d.Type() == "init_declarator" || d.Type() == "reference_declarator") {
		if d.Type() == "init_declarator" {
			d = d.ChildByFieldName("declarator")
		} else {
			d = firstNamedChild(d)
		}
	}

	if d == nil {
		return m.TypeInfo{Kind: base, Spelling: qualified, ArraySize: -1}
	}

	switch d.Type() {
	case "array_declarator", "abstract_array_declarator":
		size := d.ChildByFieldName("size")
		inner := d.ChildByFieldName("declarator")

		if size != nil && size.Type() == "number_literal" && (inner == nil || isName(inner)) {
			n, err := strconv.ParseInt(strings.TrimRight(size.Content(b.src), "uUlL"), 0, 64)
			if err == nil {
				return m.TypeInfo{
					Kind:            m.KindConstantArray,
					Spelling:        fmt.Sprintf("%s[%d]", qualified, n),
					ElementSpelling: qualified,
					ArraySize:       int(n),
				}
			}
		}

		return pointerType(base, qualified, 1)
	case "pointer_declarator", "abstract_pointer_declarator":
		return pointerType(base, qualified, pointerDepth(d))
	case "function_declarator", "abstract_function_declarator":
		return b.functionPointerType(base, qualified, d)
	default:
		return m.TypeInfo{Kind: base, Spelling: qualified, ArraySize: -1}
	}
}

// functionPointerType describes a parameter declared with function syntax,
// such as int (*cb)(int) or int cb(int). Both decay to a function pointer.
func (b *cursorBuilder) functionPointerType(base, qualified string, fn *sitter.Node) m.TypeInfo {
	inner := fn.ChildByFieldName("declarator")
	for inner != nil && (inner.Type() == "parenthesized_declarator" || inner.Type() == "abstract_parenthesized_declarator") {
		inner = firstNamedChild(inner)
	}

	stars := strings.Repeat("*", max(pointerDepth(inner), 1))

	params := "()"
	if list := fn.ChildByFieldName("parameters"); list != nil {
		params = strings.Join(strings.Fields(list.Content(b.src)), " ")
	}

	return m.TypeInfo{
		Kind:      fmt.Sprintf("%s (%s)%s", base, stars, params),
		Spelling:  fmt.Sprintf("%s (%s)%s", qualified, stars, params),
		ArraySize: -1,
	}
}

func pointerType(base, qualified string, depth int) m.TypeInfo {
	stars := strings.Repeat("*", depth)

	return m.TypeInfo{
		Kind:      base + " " + stars,
		Spelling:  qualified + " " + stars,
		ArraySize: -1,
	}
}

// qualifiedType returns the type specifier of decl with its cv-qualifiers.
func (b *cursorBuilder) qualifiedType(decl *sitter.Node) string {
	typ := decl.ChildByFieldName("type")
	if typ == nil {
		return ""
	}

	var parts []string

	for i := range int(decl.NamedChildCount()) {
		child := decl.NamedChild(i)
		if child.Type() == "type_qualifier" {
			parts = append(parts, child.Content(b.src))
		}
	}

	return strings.Join(append(parts, b.typeText(typ)), " ")
}

func (b *cursorBuilder) typeText(typ *sitter.Node) string {
	if typ == nil {
		return ""
	}

	return strings.Join(strings.Fields(typ.Content(b.src)), " ")
}

// pointerSuffix returns the pointer or reference part of a function's
// declarator chain, which belongs to its return type.
func pointerSuffix(declarator *sitter.Node) string {
	var suffix string

	for d := declarator; d != nil && d.Type() != "function_declarator"; {
		switch d.Type() {
		case "pointer_declarator":
			suffix += "*"
			d = d.ChildByFieldName("declarator")
		case "reference_declarator":
			suffix += "&"
			d = firstNamedChild(d)
		default:
			d = nil
		}
	}

	if suffix == "" {
		return ""
	}

	return " " + suffix
}

func functionDeclarator(d *sitter.Node) *sitter.Node {
	for d != nil {
		switch d.Type() {
		case "function_declarator":
			return d
		case "pointer_declarator":
			d = d.ChildByFieldName("declarator")
		case "reference_declarator":
			d = firstNamedChild(d)
		default:
			return nil
		}
	}

	return nil
}

type declName struct {
	node *sitter.Node
}

func (n declName) content(src []byte) string {
	if n.node == nil {
		return ""
	}

	return n.node.Content(src)
}

// declaratorName finds the identifier introduced by a declarator chain.
func declaratorName(d *sitter.Node) declName {
	for d != nil {
		if isName(d) {
			return declName{node: d}
		}

		switch d.Type() {
		case "init_declarator", "pointer_declarator", "array_declarator", "parenthesized_declarator", "function_declarator":
			next := d.ChildByFieldName("declarator")
			if next == nil {
				next = firstNamedChild(d)
			}

			d = next
		case "reference_declarator":
			d = firstNamedChild(d)
		default:
			return declName{}
		}
	}

	return declName{}
}

func isName(d *sitter.Node) bool {
	return d.Type() == "identifier"
}

func pointerDepth(d *sitter.Node) int {
	depth := 0

	for d != nil && (d.Type() == "pointer_declarator" || d.Type() == "abstract_pointer_declarator") {
		depth++
		d = d.ChildByFieldName("declarator")
	}

	return depth
}

func isVoid(param *sitter.Node, src []byte) bool {
	typ := param.ChildByFieldName("type")

	return typ != nil && typ.Content(src) == "void"
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}

	return n.NamedChild(0)
}

func row(p sitter.Point) int {
	return int(p.Row) + 1
}

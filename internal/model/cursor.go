package model

import "iter"

// CursorKind classifies the declarations exposed by the structural parser.
type CursorKind int

// Cursor kinds understood by the indexer.
const (
	CursorTranslationUnit CursorKind = iota
	CursorFunctionDecl
	CursorVarDecl
	CursorParmDecl
)

func (k CursorKind) String() string {
	switch k {
	case CursorTranslationUnit:
		return "translation_unit"
	case CursorFunctionDecl:
		return "function_decl"
	case CursorVarDecl:
		return "var_decl"
	case CursorParmDecl:
		return "parm_decl"
	default:
		return "unknown"
	}
}

// KindConstantArray is the type kind tag of constant-size arrays.
const KindConstantArray = "constantarray"

// TypeInfo describes the type of a declaration.
type TypeInfo struct {
	// Kind is the lower-cased scalar kind tag, or KindConstantArray.
	Kind string
	// Spelling is the declared type as written (normalised whitespace).
	Spelling string
	// ElementSpelling is the array element type; empty for non-arrays.
	ElementSpelling string
	// ArraySize is the element count of constant arrays, -1 otherwise.
	ArraySize int
}

// Cursor is a node of the parse tree produced for one translation unit.
type Cursor struct {
	Kind     CursorKind
	Spelling string
	// File is the file the declaration was read from; empty when unknown.
	File Path
	// Line is the location line of the declared name.
	Line   int
	Extent LineRange
	// Type is the declared type for variables and parameters, and the return
	// type for functions.
	Type TypeInfo

	semanticParent *Cursor
	children       []*Cursor
}

// AddChild appends child and makes c its semantic parent.
func (c *Cursor) AddChild(child *Cursor) *Cursor {
	child.semanticParent = c
	c.children = append(c.children, child)

	return child
}

// SemanticParent returns the declaration context of c, or nil for the root.
func (c *Cursor) SemanticParent() *Cursor {
	return c.semanticParent
}

// Children returns the direct children in source order.
func (c *Cursor) Children() []*Cursor {
	return c.children
}

// Preorder yields c and all of its descendants in preorder.
func (c *Cursor) Preorder() iter.Seq[*Cursor] {
	return func(yield func(*Cursor) bool) {
		c.walk(yield)
	}
}

func (c *Cursor) walk(yield func(*Cursor) bool) bool {
	if !yield(c) {
		return false
	}

	for _, child := range c.children {
		if !child.walk(yield) {
			return false
		}
	}

	return true
}

// TranslationUnit is a parsed source file.
type TranslationUnit struct {
	Path Path
	Root *Cursor
}

// NewTranslationUnit creates an empty translation unit for path.
func NewTranslationUnit(path Path) *TranslationUnit {
	return &TranslationUnit{
		Path: path,
		Root: &Cursor{Kind: CursorTranslationUnit, Spelling: string(path), File: path},
	}
}

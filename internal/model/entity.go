package model

import (
	"fmt"
	"strings"
)

// DeclaredVariable is a local variable of the entry function.
type DeclaredVariable struct {
	Name              string
	Line              int
	EnclosingFunction string
}

// VariableIndex maps declaration lines to unambiguous variable names.
type VariableIndex map[int]string

// Parameter is a function parameter descriptor: either a ScalarParam or an
// ArrayParam.
type Parameter interface {
	// KindTag returns the scalar kind tag or KindConstantArray.
	KindTag() string
	// ElementType returns the array element type, empty for scalars.
	ElementType() string
	// ArraySize returns the element count, -1 for scalars.
	ArraySize() int
	// ByteSize is the number of fuzzer input bytes consumed by the parameter.
	ByteSize() int
	// Spelling is the parameter type as displayed in signatures.
	Spelling() string

	isParameter()
}

// ScalarParam is a non-array parameter.
type ScalarParam struct {
	Kind string
}

func (p ScalarParam) KindTag() string     { return p.Kind }
func (p ScalarParam) ElementType() string { return "" }
func (p ScalarParam) ArraySize() int      { return -1 }
func (p ScalarParam) ByteSize() int       { return 1 }
func (p ScalarParam) Spelling() string    { return p.Kind }
func (ScalarParam) isParameter()          {}

// ArrayParam is a constant-size array parameter.
type ArrayParam struct {
	Element string
	Size    int
}

func (p ArrayParam) KindTag() string     { return KindConstantArray }
func (p ArrayParam) ElementType() string { return p.Element }
func (p ArrayParam) ArraySize() int      { return p.Size }
func (p ArrayParam) ByteSize() int       { return p.Size }

// Spelling returns the decayed pointer type, matching how a function type
// spells array parameters.
func (p ArrayParam) Spelling() string { return p.Element + " *" }
func (ArrayParam) isParameter()       {}

// FunctionSignature describes a free function declaration.
type FunctionSignature struct {
	Name       string
	Line       int
	ReturnType string
	Params     []Parameter
}

// ParamCount returns the number of declared parameters.
func (f FunctionSignature) ParamCount() int {
	return len(f.Params)
}

// Display renders "name returnType (paramTypes...)".
func (f FunctionSignature) Display() string {
	types := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		types = append(types, p.Spelling())
	}

	return fmt.Sprintf("%s %s (%s)", f.Name, f.ReturnType, strings.Join(types, ", "))
}

// FunctionIndex holds two views keyed by declaration line.
type FunctionIndex struct {
	Display map[int]string
	Details map[int]FunctionSignature
}

// NewFunctionIndex returns an empty index.
func NewFunctionIndex() FunctionIndex {
	return FunctionIndex{
		Display: make(map[int]string),
		Details: make(map[int]FunctionSignature),
	}
}

// Add records fn under its declaration line in both views.
func (idx FunctionIndex) Add(fn FunctionSignature) {
	idx.Display[fn.Line] = fn.Display()
	idx.Details[fn.Line] = fn
}

// Lines returns the keys of the index.
func (idx FunctionIndex) Lines() []int {
	lines := make([]int, 0, len(idx.Details))
	for line := range idx.Details {
		lines = append(lines, line)
	}

	return lines
}

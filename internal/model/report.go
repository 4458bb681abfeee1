package model

// ObjectInputs holds the symbolic objects read from a ktest-tool dump.
// Names and Integers are consumed pairwise by one shared cursor.
type ObjectInputs struct {
	Names       []string
	Integers    []int64
	ObjectCount int
}

// NamedValue is one concrete input of a fault.
type NamedValue struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// FaultInputs pairs a fault message with the inputs that triggered it.
type FaultInputs struct {
	Number  int          `yaml:"number"`
	Message string       `yaml:"message"`
	Inputs  []NamedValue `yaml:"inputs"`
}

// FaultReport is the structured result of a concolic run.
type FaultReport struct {
	Source Path          `yaml:"source"`
	Faults []FaultInputs `yaml:"faults"`
}

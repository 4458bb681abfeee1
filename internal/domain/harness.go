package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

const alphabetSize = 26

// LetterCounter hands out single-letter identifiers a..z, wrapping after z.
// The zero value starts at 'a'.
type LetterCounter struct {
	next int
}

// Next returns the current letter and advances the counter.
func (c *LetterCounter) Next() string {
	letter := string(rune('a' + c.next))
	c.next = (c.next + 1) % alphabetSize

	return letter
}

// HarnessSynthesizer appends libFuzzer entry points to sources. It owns a
// LetterCounter that keeps advancing across harnesses and is not safe for
// concurrent use.
type HarnessSynthesizer struct {
	letters LetterCounter
}

// NewHarnessSynthesizer returns a synthesizer whose counter starts at 'a'.
func NewHarnessSynthesizer() *HarnessSynthesizer {
	return &HarnessSynthesizer{}
}

// HarnessSize returns the exact input length accepted by a harness for fn.
func HarnessSize(fn m.FunctionSignature) int {
	size := 0
	for _, p := range fn.Params {
		size += p.ByteSize()
	}

	return size
}

// Synthesize returns lines followed by an LLVMFuzzerTestOneInput that copies
// the fuzzer input into one local per parameter and calls fn.
func (h *HarnessSynthesizer) Synthesize(lines m.Lines, fn m.FunctionSignature) m.Lines {
	var sb strings.Builder

	sb.WriteString(lines.String())
	sb.WriteString("\nextern \"C\" int LLVMFuzzerTestOneInput(const uint8_t *Data, size_t Size) {\n\n")

	names := make([]string, len(fn.Params))

	for i, p := range fn.Params {
		names[i] = h.letters.Next()

		switch kind := p.KindTag(); {
		case kind == m.KindConstantArray:
			fmt.Fprintf(&sb, "    %s %s[%d];\n", p.ElementType(), names[i], p.ArraySize())
		case isFunctionPointer(kind):
			// int (*)(int) becomes int (*a[1])(int)
			at := strings.Index(kind, ")")
			fmt.Fprintf(&sb, "    %s%s[1]%s;\n", kind[:at], names[i], kind[at:])
		default:
			fmt.Fprintf(&sb, "    %s %s[1];\n", kind, names[i])
		}
	}

	fmt.Fprintf(&sb, "\n    if(Size == %d){\n\n", HarnessSize(fn))

	offset := 0
	for i, p := range fn.Params {
		fmt.Fprintf(&sb, "        memcpy(%s, Data + %d, %d);\n", names[i], offset, p.ByteSize())
		offset += p.ByteSize()
	}

	args := make([]string, len(fn.Params))

	for i, p := range fn.Params {
		if p.KindTag() == m.KindConstantArray {
			args[i] = names[i]
		} else {
			args[i] = names[i] + "[0]"
		}
	}

	fmt.Fprintf(&sb, "        %s(%s);", fn.Name, strings.Join(args, ", "))
	sb.WriteString("\n\n    }")
	sb.WriteString("\n    return 0;\n}")

	return m.SplitLines(sb.String())
}

func isFunctionPointer(kind string) bool {
	return strings.Contains(kind, "(*")
}

package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/consept/internal/model"
)

const singleBlockDump = "ktest file 1:\nnum objects: 1\nobject 0: name: 'x'\nobject 0: int : 42"

func ktestBlock(n int, values ...string) string {
	var sb strings.Builder

	sb.WriteString("ktest file " + string(rune('0'+n)) + ":\n")
	sb.WriteString("num objects: 2\n")
	sb.WriteString("object 0: name: 'x'\n")
	sb.WriteString("object 0: int : " + values[0] + "\n")
	sb.WriteString("object 1: name: 'y'\n")
	sb.WriteString("object 1: int : " + values[1] + "\n")

	return sb.String()
}

func TestAttributeInputsToFaults(t *testing.T) {
	t.Parallel()

	twoBlocks := strings.TrimSuffix(ktestBlock(1, "42", "4")+ktestBlock(2, "55", "2"), "\n")

	tests := []struct {
		name   string
		dump   string
		faults int
		want   m.ObjectInputs
	}{
		{
			name:   "single block single fault",
			dump:   singleBlockDump,
			faults: 1,
			want:   m.ObjectInputs{Names: []string{"x"}, Integers: []int64{42}, ObjectCount: 1},
		},
		{
			name:   "zero faults reads nothing",
			dump:   singleBlockDump,
			faults: 0,
			want:   m.ObjectInputs{Names: []string{}, Integers: []int64{}},
		},
		{
			name:   "two blocks two faults",
			dump:   twoBlocks,
			faults: 2,
			want: m.ObjectInputs{
				Names:       []string{"x", "y", "x", "y"},
				Integers:    []int64{42, 4, 55, 2},
				ObjectCount: 2,
			},
		},
		{
			name:   "empty dump",
			dump:   "",
			faults: 3,
			want:   m.ObjectInputs{},
		},
		{
			name:   "negative values",
			dump:   "ktest file 1:\nnum objects: 1\nobject 0: name: 'n'\nobject 0: int : -7",
			faults: 1,
			want:   m.ObjectInputs{Names: []string{"n"}, Integers: []int64{-7}, ObjectCount: 1},
		},
		{
			name:   "unmatched lines are skipped",
			dump:   "ktest file 1:\nargs: ['test.bc']\nnum objects: 1\nobject 0: size: 4\nobject 0: name: 'x'\nobject 0: int : 1",
			faults: 1,
			want:   m.ObjectInputs{Names: []string{"x"}, Integers: []int64{1}, ObjectCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := AttributeInputsToFaults(tt.dump, tt.faults)

			assert.Len(t, got.Names, len(tt.want.Names))
			assert.Len(t, got.Integers, len(tt.want.Integers))

			if len(tt.want.Names) > 0 {
				assert.Equal(t, tt.want.Names, got.Names)
				assert.Equal(t, tt.want.Integers, got.Integers)
			}

			assert.Equal(t, tt.want.ObjectCount, got.ObjectCount)
		})
	}
}

func TestAttributeInputsToFaults_NeverReadsPastBoundary(t *testing.T) {
	t.Parallel()

	dump := ktestBlock(1, "1", "2") + ktestBlock(2, "3", "4") + ktestBlock(3, "5", "6") + ktestBlock(4, "7", "8")

	for n := 1; n <= 2; n++ {
		got := AttributeInputsToFaults(dump, n)

		assert.Len(t, got.Integers, 2*n, "faults=%d", n)

		for _, v := range got.Integers {
			assert.LessOrEqual(t, v, int64(2*n), "faults=%d read value %d from a later block", n, v)
		}
	}
}

func TestAttributeInputsToFaults_FewerBoundariesScansToEnd(t *testing.T) {
	t.Parallel()

	got := AttributeInputsToFaults(singleBlockDump, 5)

	assert.Equal(t, []string{"x"}, got.Names)
	assert.Equal(t, []int64{42}, got.Integers)
	assert.Equal(t, 1, got.ObjectCount)
}

func TestParseObjectRecords(t *testing.T) {
	t.Parallel()

	records := ParseObjectRecords(ktestBlock(1, "42", "4") + ktestBlock(2, "55", "2"))

	assert.Equal(t, []int{0, 6, 11}, records.Boundaries)
	assert.Equal(t, []int64{42, 4, 55, 2}, records.Integers)
	assert.Equal(t, 2, records.ObjectCount)
}

func TestRenderFaultReport(t *testing.T) {
	t.Parallel()

	t.Run("shared cursor across faults", func(t *testing.T) {
		t.Parallel()

		inputs := m.ObjectInputs{
			Names:       []string{"x", "y", "x", "y"},
			Integers:    []int64{42, 4, 55, 2},
			ObjectCount: 2,
		}

		got := RenderFaultReport([]string{"KLEE: ERROR: a.cpp:3: divide by zero", "KLEE: ERROR: a.cpp:9: overflow"}, inputs)

		want := "CODE ERRORS AND INPUTS" +
			"\nERROR NUMBER 1: KLEE: ERROR: a.cpp:3: divide by zero\nCAUSING INPUT:\nx = 42\ny = 4\n" +
			"\nERROR NUMBER 2: KLEE: ERROR: a.cpp:9: overflow\nCAUSING INPUT:\nx = 55\ny = 2\n"
		assert.Equal(t, want, got)
	})

	t.Run("truncated dump stops early", func(t *testing.T) {
		t.Parallel()

		inputs := m.ObjectInputs{Names: []string{"x"}, Integers: []int64{1}, ObjectCount: 3}

		report := BuildFaultReport([]string{"first", "second"}, inputs)
		require.Len(t, report.Faults, 2)

		assert.Equal(t, []m.NamedValue{{Name: "x", Value: 1}}, report.Faults[0].Inputs)
		assert.Empty(t, report.Faults[1].Inputs)
	})

	t.Run("no inputs", func(t *testing.T) {
		t.Parallel()

		got := RenderFaultReport([]string{"boom"}, m.ObjectInputs{})
		assert.Equal(t, "CODE ERRORS AND INPUTS\nERROR NUMBER 1: boom\nCAUSING INPUT:\n", got)
	})
}

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

var (
	objectNamePattern  = regexp.MustCompile(`^object\s(\d+):\sname:\s'([^']+)'\s*$`)
	objectIntPattern   = regexp.MustCompile(`^object\s(\d+):\sint\s:\s(-?\d+)\s*$`)
	objectCountPattern = regexp.MustCompile(`^num objects:\s(\d+)$`)
)

const blockMarker = "ktest file"

// ObjectRecords is the result of classifying every line of a ktest-tool dump.
type ObjectRecords struct {
	m.ObjectInputs
	// Boundaries are the 0-based positions of block-start lines and of the
	// final line.
	Boundaries []int
}

// ParseObjectRecords classifies every line of dump.
func ParseObjectRecords(dump string) ObjectRecords {
	lines := splitDump(dump)

	return ObjectRecords{
		ObjectInputs: collectObjects(lines, len(lines)-1),
		Boundaries:   blockBoundaries(lines, -1),
	}
}

// AttributeInputsToFaults collects the object names, integer values and the
// first object count found up to the (faultCount+1)-th block boundary.
// Anything after that boundary is never read.
func AttributeInputsToFaults(dump string, faultCount int) m.ObjectInputs {
	if faultCount < 0 {
		faultCount = 0
	}

	lines := splitDump(dump)

	boundaries := blockBoundaries(lines, faultCount+1)
	if len(boundaries) == 0 {
		return m.ObjectInputs{}
	}

	last := len(lines) - 1
	if len(boundaries) > faultCount {
		last = boundaries[faultCount]
	}

	return collectObjects(lines, last)
}

// RenderFaultReport prints every fault followed by up to ObjectCount
// "name = value" lines taken from one cursor shared by all faults.
func RenderFaultReport(faults []string, inputs m.ObjectInputs) string {
	var sb strings.Builder

	sb.WriteString("CODE ERRORS AND INPUTS")

	for _, fault := range BuildFaultReport(faults, inputs).Faults {
		fmt.Fprintf(&sb, "\nERROR NUMBER %d: %s\nCAUSING INPUT:\n", fault.Number, fault.Message)

		for _, in := range fault.Inputs {
			fmt.Fprintf(&sb, "%s = %d\n", in.Name, in.Value)
		}
	}

	return sb.String()
}

// BuildFaultReport pairs faults with their inputs the same way
// RenderFaultReport does.
func BuildFaultReport(faults []string, inputs m.ObjectInputs) m.FaultReport {
	report := m.FaultReport{Faults: make([]m.FaultInputs, 0, len(faults))}
	cursor := 0

	for i, message := range faults {
		fault := m.FaultInputs{Number: i + 1, Message: message, Inputs: []m.NamedValue{}}

		for range inputs.ObjectCount {
			if cursor >= len(inputs.Names) || cursor >= len(inputs.Integers) {
				break
			}

			fault.Inputs = append(fault.Inputs, m.NamedValue{
				Name:  inputs.Names[cursor],
				Value: inputs.Integers[cursor],
			})
			cursor++
		}

		report.Faults = append(report.Faults, fault)
	}

	return report
}

func splitDump(dump string) []string {
	dump = strings.ReplaceAll(dump, "\r\n", "\n")
	dump = strings.TrimSuffix(dump, "\n")

	if dump == "" {
		return nil
	}

	return strings.Split(dump, "\n")
}

// blockBoundaries returns up to limit boundary positions, all of them when
// limit is negative.
func blockBoundaries(lines []string, limit int) []int {
	var boundaries []int

	for i, line := range lines {
		if limit >= 0 && len(boundaries) >= limit {
			break
		}

		if strings.Contains(strings.ToLower(line), blockMarker) || i == len(lines)-1 {
			boundaries = append(boundaries, i)
		}
	}

	return boundaries
}

// collectObjects classifies lines[0..last].
func collectObjects(lines []string, last int) m.ObjectInputs {
	inputs := m.ObjectInputs{Names: []string{}, Integers: []int64{}}
	countSeen := false

	for i, line := range lines {
		if i > last {
			break
		}

		if match := objectIntPattern.FindStringSubmatch(line); match != nil {
			if v, err := strconv.ParseInt(match[2], 10, 64); err == nil {
				inputs.Integers = append(inputs.Integers, v)
			}
		}

		if match := objectNamePattern.FindStringSubmatch(line); match != nil {
			inputs.Names = append(inputs.Names, match[2])
		}

		if match := objectCountPattern.FindStringSubmatch(line); match != nil && !countSeen {
			if n, err := strconv.Atoi(match[1]); err == nil {
				inputs.ObjectCount = n
				countSeen = true
			}
		}
	}

	return inputs
}

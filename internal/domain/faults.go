package domain

import (
	"strings"
	"unicode"
)

// DefaultFaultPrefix marks fault lines in KLEE's messages.txt.
const DefaultFaultPrefix = "KLEE: ERROR:"

var sanitizerMarkers = []string{
	"ERROR: AddressSanitizer",
	"ERROR: MemorySanitizer",
	"ERROR: libFuzzer",
}

// ExtractFaultLines returns, in order, every line of log that starts with
// prefix, with trailing whitespace removed.
func ExtractFaultLines(log, prefix string) []string {
	if prefix == "" {
		prefix = DefaultFaultPrefix
	}

	return filterLines(log, func(line string) bool {
		return strings.HasPrefix(line, prefix)
	})
}

// ExtractSanitizerFaults returns the sanitizer and libFuzzer error lines of
// a fuzzing run together with its SUMMARY lines.
func ExtractSanitizerFaults(output string) []string {
	return filterLines(output, func(line string) bool {
		if strings.HasPrefix(line, "SUMMARY:") {
			return true
		}

		for _, marker := range sanitizerMarkers {
			if strings.Contains(line, marker) {
				return true
			}
		}

		return false
	})
}

func filterLines(text string, keep func(string) bool) []string {
	matches := []string{}

	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")
		if keep(line) {
			matches = append(matches, strings.TrimRightFunc(line, unicode.IsSpace))
		}
	}

	return matches
}

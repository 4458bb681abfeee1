package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/consept/internal/model"
)

const (
	reportHashLength = 16
	indexFileName    = "_index.yaml"
)

// ReportStore persists raw test dumps and structured fault reports.
type ReportStore interface {
	// SaveTests writes the ktest-tool dump to name.txt inside dir.
	SaveTests(dir m.Path, name string, dump string) (m.Path, error)
	// SaveFaultReport writes report as YAML into dir and records it in the
	// directory index.
	SaveFaultReport(dir m.Path, report m.FaultReport) (m.Path, error)
}

// LocalReportStore implements ReportStore on top of a SourceFSAdapter.
type LocalReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore(fs SourceFSAdapter) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

type indexEntry struct {
	File   string `yaml:"file"`
	Source string `yaml:"source"`
	Faults int    `yaml:"faults"`
}

type indexYAML struct {
	Reports []indexEntry `yaml:"reports"`
}

// SaveTests stores the dump as plain text.
func (rs *LocalReportStore) SaveTests(dir m.Path, name string, dump string) (m.Path, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}

	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}

	path := rs.fs.JoinPath(string(dir), name)
	if err := rs.fs.WriteFile(path, []byte(dump), 0o644); err != nil {
		return "", fmt.Errorf("failed to save tests: %w", err)
	}

	return path, nil
}

// SaveFaultReport writes the report to <hash>.yaml where hash fingerprints
// the report content, so saving the same report twice is idempotent.
func (rs *LocalReportStore) SaveFaultReport(dir m.Path, report m.FaultReport) (m.Path, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode fault report: %w", err)
	}

	if err := rs.fs.EnsureDir(dir); err != nil {
		return "", err
	}

	name := computeReportHash(data) + ".yaml"
	path := rs.fs.JoinPath(string(dir), name)

	if err := rs.fs.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save fault report: %w", err)
	}

	if err := rs.updateIndex(dir, indexEntry{File: name, Source: string(report.Source), Faults: len(report.Faults)}); err != nil {
		return "", err
	}

	return path, nil
}

func (rs *LocalReportStore) updateIndex(dir m.Path, entry indexEntry) error {
	path := rs.fs.JoinPath(string(dir), indexFileName)

	var index indexYAML

	if content, err := rs.fs.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(content, &index); err != nil {
			return fmt.Errorf("failed to decode %s: %w", filepath.Base(string(path)), err)
		}
	}

	replaced := false

	for i := range index.Reports {
		if index.Reports[i].File == entry.File {
			index.Reports[i] = entry
			replaced = true
		}
	}

	if !replaced {
		index.Reports = append(index.Reports, entry)
	}

	sort.Slice(index.Reports, func(i, j int) bool {
		return index.Reports[i].File < index.Reports[j].File
	})

	data, err := yaml.Marshal(index)
	if err != nil {
		return err
	}

	return rs.fs.WriteFile(path, data, 0o644)
}

func computeReportHash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])[:reportHashLength]
}

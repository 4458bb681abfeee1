package adapter

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	m "github.com/mouse-blink/consept/internal/model"
)

// ToolConfigAdapter reads and writes TOML tool configuration files.
type ToolConfigAdapter interface {
	// Load decodes the TOML file at path. A missing file yields an empty
	// document.
	Load(path m.Path) (map[string]any, error)
	// Save encodes doc as TOML into path.
	Save(path m.Path, doc map[string]any) error
}

// TOMLConfigAdapter implements ToolConfigAdapter with go-toml.
type TOMLConfigAdapter struct {
	fs SourceFSAdapter
}

// NewTOMLConfigAdapter constructs a TOMLConfigAdapter writing through fs.
func NewTOMLConfigAdapter(fs SourceFSAdapter) *TOMLConfigAdapter {
	return &TOMLConfigAdapter{fs: fs}
}

// Load reads a TOML document.
func (a *TOMLConfigAdapter) Load(path m.Path) (map[string]any, error) {
	content, err := a.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) || errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}

		return nil, err
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return doc, nil
}

// Save writes doc to path.
func (a *TOMLConfigAdapter) Save(path m.Path, doc map[string]any) error {
	content, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return a.fs.WriteFile(path, content, 0o644)
}

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

// ErrInvalidExtension is returned for files that are not C++ translation
// units.
var ErrInvalidExtension = errors.New("invalid file extension")

// CompileDBAdapter reads compile_commands.json databases.
type CompileDBAdapter interface {
	// Load returns every entry of the database at path. Entries whose file is
	// not a .cpp file make the whole database invalid.
	Load(path m.Path) ([]m.CompileCommand, error)
}

// LocalCompileDBAdapter implements CompileDBAdapter on the local disk.
type LocalCompileDBAdapter struct{}

// NewLocalCompileDBAdapter constructs a LocalCompileDBAdapter.
func NewLocalCompileDBAdapter() *LocalCompileDBAdapter {
	return &LocalCompileDBAdapter{}
}

// Load parses the database and validates its entries.
func (a *LocalCompileDBAdapter) Load(path m.Path) ([]m.CompileCommand, error) {
	// #nosec G304 - the database path is chosen by the user
	content, err := os.ReadFile(string(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, err
	}

	var commands []m.CompileCommand
	if err := json.Unmarshal(content, &commands); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if len(commands) == 0 {
		return nil, fmt.Errorf("no compile command found in %s", path)
	}

	for i, cmd := range commands {
		if filepath.Ext(cmd.File) != ".cpp" {
			return nil, fmt.Errorf("%w: %q is not a .cpp file", ErrInvalidExtension, cmd.File)
		}

		if cmd.Command == "" && len(cmd.Arguments) > 0 {
			commands[i].Command = strings.Join(cmd.Arguments, " ")
		}
	}

	return commands, nil
}

package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mouse-blink/consept/internal/adapter"
	m "github.com/mouse-blink/consept/internal/model"
)

const (
	scriptShebang   = "#!/bin/sh"
	scriptExitEcho  = "echo Now exiting container"
	scriptTimestamp = "200601021504"
)

// ErrNoScript is returned when commands are added before a script is opened.
var ErrNoScript = errors.New("no script opened")

// ToolHandler owns the mount folder of one tool and the shell script that is
// executed inside the tool container.
type ToolHandler struct {
	tool       m.Tool
	image      string
	mountDir   m.Path
	keep       bool
	fs         adapter.SourceFSAdapter
	containers adapter.ContainerAdapter
	logger     logrus.FieldLogger
	now        func() time.Time

	script   string
	commands []string
}

// NewToolHandler creates a handler whose mount folder is
// <workspace>/tmp/<tool>.
func NewToolHandler(tool m.Tool, settings Settings, fs adapter.SourceFSAdapter,
	containers adapter.ContainerAdapter, logger logrus.FieldLogger) *ToolHandler {
	now := settings.Now
	if now == nil {
		now = time.Now
	}

	return &ToolHandler{
		tool:       tool,
		image:      settings.imageName(tool),
		mountDir:   fs.JoinPath(settings.Workspace, "tmp", string(tool)),
		keep:       settings.KeepContainers,
		fs:         fs,
		containers: containers,
		logger:     logger.WithField("tool", tool),
		now:        now,
	}
}

// MountDir returns the host side of the tool's mount folder.
func (h *ToolHandler) MountDir() m.Path {
	return h.mountDir
}

// MountPath returns the host path of elem inside the mount folder.
func (h *ToolHandler) MountPath(elem ...string) m.Path {
	return h.fs.JoinPath(append([]string{string(h.mountDir)}, elem...)...)
}

// ContainerPath returns the in-container path of elem inside the mount
// folder.
func (h *ToolHandler) ContainerPath(elem ...string) string {
	return strings.Join(append([]string{h.tool.ContainerDir()}, elem...), "/")
}

// Reset empties the mount folder.
func (h *ToolHandler) Reset() error {
	if err := h.fs.EmptyDir(h.mountDir); err != nil {
		return fmt.Errorf("failed to empty the mount folder: %w", err)
	}

	return nil
}

// Ensure creates the mount folder when missing.
func (h *ToolHandler) Ensure() error {
	return h.fs.EnsureDir(h.mountDir)
}

// OpenScript starts a new script named <tool>_<timestamp>.sh.
func (h *ToolHandler) OpenScript() string {
	h.script = fmt.Sprintf("%s_%s.sh", h.tool, h.now().Format(scriptTimestamp))
	h.commands = nil

	h.logger.Debugf("opening new script %s", h.script)

	return h.script
}

// AddCommand appends a command line to the open script.
func (h *ToolHandler) AddCommand(command string) error {
	if h.script == "" {
		return ErrNoScript
	}

	h.commands = append(h.commands, command)

	return nil
}

// Script renders the open script with Unix line endings.
func (h *ToolHandler) Script() string {
	var sb strings.Builder

	sb.WriteString(scriptShebang + "\n")

	for _, command := range h.commands {
		sb.WriteString(command)
		sb.WriteString("\n")
	}

	return normalizeLineEndings(sb.String())
}

// Run appends the exit notice, writes the script into the mount folder and
// runs it in the tool container.
func (h *ToolHandler) Run(ctx context.Context, extra ...m.Mount) ([]byte, error) {
	if err := h.AddCommand(scriptExitEcho); err != nil {
		return nil, err
	}

	if err := h.fs.WriteFile(h.MountPath(h.script), []byte(h.Script()), 0o755); err != nil {
		return nil, fmt.Errorf("failed to write script %s: %w", h.script, err)
	}

	return h.Exec(ctx, "sh "+h.ContainerPath(h.script), extra...)
}

// Exec runs command in a fresh tool container with the mount folder bound
// to its in-container path.
func (h *ToolHandler) Exec(ctx context.Context, command string, extra ...m.Mount) ([]byte, error) {
	source, err := filepath.Abs(string(h.mountDir))
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	h.logger.WithFields(logrus.Fields{"run": runID, "command": command}).Info("running tool container")

	mounts := append([]m.Mount{{Source: source, Target: h.tool.ContainerDir()}}, extra...)

	out, err := h.containers.Run(ctx, m.RunSpec{
		Tool:      h.tool,
		Image:     h.image,
		Container: h.tool.ContainerName(),
		Command:   command,
		Mounts:    mounts,
		Keep:      h.keep,
	})
	if err != nil {
		return nil, fmt.Errorf("%s container run %s failed: %w", h.tool, runID, err)
	}

	return out, nil
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return strings.ReplaceAll(text, "\r", "\n")
}

package model

import "fmt"

// Tool identifies one of the orchestrated analysis tools.
type Tool string

const (
	// ToolConcolic is the KLEE symbolic execution engine.
	ToolConcolic Tool = "concolic"
	// ToolFuzz is libFuzzer.
	ToolFuzz Tool = "fuzz"
	// ToolMutation is the Dextool mutation testing tool.
	ToolMutation Tool = "mutation"
)

// AllTools lists the tools in a stable order.
var AllTools = []Tool{ToolConcolic, ToolFuzz, ToolMutation}

// ParseTool validates a tool name.
func ParseTool(name string) (Tool, error) {
	for _, t := range AllTools {
		if string(t) == name {
			return t, nil
		}
	}

	return "", fmt.Errorf("tool %q should be one of %v", name, AllTools)
}

// ContainerMountRoot is where tool mount folders appear inside containers.
const ContainerMountRoot = "/home/consept/tmp"

// ContainerDir returns the in-container path of the tool's mount folder.
func (t Tool) ContainerDir() string {
	return ContainerMountRoot + "/" + string(t)
}

// ImageName returns the image tag built for the tool.
func (t Tool) ImageName() string {
	return "image_consept_" + string(t)
}

// ContainerName returns the container name used for the tool.
func (t Tool) ContainerName() string {
	return "container_consept_" + string(t)
}

// Sanitizer selects the libFuzzer sanitizer.
type Sanitizer string

// Supported sanitizers.
const (
	SanitizerAddress Sanitizer = "address"
	SanitizerMemory  Sanitizer = "memory"
)

// ParseSanitizer validates a sanitizer name.
func ParseSanitizer(name string) (Sanitizer, error) {
	switch Sanitizer(name) {
	case SanitizerAddress, SanitizerMemory:
		return Sanitizer(name), nil
	default:
		return "", fmt.Errorf("sanitizer %q should be %q or %q", name, SanitizerAddress, SanitizerMemory)
	}
}

// Mount binds a host directory into a container.
type Mount struct {
	Source string
	Target string
}

// ImageSpec describes how to build a tool image.
type ImageSpec struct {
	Tool       Tool
	Name       string
	Dockerfile Path
	BuildArgs  map[string]string
}

// RunSpec describes one container run.
type RunSpec struct {
	Tool      Tool
	Image     string
	Container string
	Command   string
	Mounts    []Mount
	// Keep leaves the container in place after the run.
	Keep bool
}

// CompileCommand is one entry of a compile_commands.json database.
type CompileCommand struct {
	Directory string   `json:"directory"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
}

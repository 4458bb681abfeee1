package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sirupsen/logrus"

	m "github.com/mouse-blink/consept/internal/model"
)

// ContainerAdapter builds tool images and runs commands in tool containers.
type ContainerAdapter interface {
	// EnsureImage builds the image unless a tag with its name already exists.
	// rebuild forces a build.
	EnsureImage(ctx context.Context, spec m.ImageSpec, rebuild bool) error
	// Run starts a container for spec, waits for it to stop and returns its
	// combined stdout and stderr.
	Run(ctx context.Context, spec m.RunSpec) ([]byte, error)
	// Close releases the connection to the engine.
	Close() error
}

// dockerAPI is the part of the Docker Engine client used by DockerAdapter.
type dockerAPI interface {
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig,
		networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	Close() error
}

// DockerAdapter implements ContainerAdapter with the Docker Engine API.
type DockerAdapter struct {
	api    dockerAPI
	logger logrus.FieldLogger
}

// NewDockerAdapter connects to the engine configured in the environment
// (DOCKER_HOST and friends).
func NewDockerAdapter(logger logrus.FieldLogger) (*DockerAdapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to docker: %w", err)
	}

	return newDockerAdapter(cli, logger), nil
}

func newDockerAdapter(api dockerAPI, logger logrus.FieldLogger) *DockerAdapter {
	return &DockerAdapter{api: api, logger: logger}
}

// EnsureImage builds spec.Dockerfile's directory into spec.Name.
func (d *DockerAdapter) EnsureImage(ctx context.Context, spec m.ImageSpec, rebuild bool) error {
	log := d.logger.WithFields(logrus.Fields{"tool": spec.Tool, "image": spec.Name})

	exists, err := d.imageExists(ctx, spec.Name)
	if err != nil {
		return err
	}

	if exists && !rebuild {
		log.Info("image exists already, will not build")
		return nil
	}

	if exists {
		log.Info("image exists already, will build anyway")
	}

	contextDir := string(spec.Dockerfile)
	if filepath.Base(contextDir) == "Dockerfile" {
		contextDir = filepath.Dir(contextDir)
	}

	buildContext, err := archive.TarWithOptions(contextDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("no Dockerfile found in %s: %w", contextDir, err)
	}
	defer func() { _ = buildContext.Close() }()

	args := make(map[string]*string, len(spec.BuildArgs))
	for k, v := range spec.BuildArgs {
		args[k] = &v
	}

	log.Infof("will now build image from %q", contextDir)

	resp, err := d.api.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:      []string{spec.Name},
		BuildArgs: args,
		Remove:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image %s: %w", spec.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var buildLog bytes.Buffer

	err = jsonmessage.DisplayJSONMessagesStream(resp.Body, &buildLog, 0, false, nil)

	log.Infof("=== IMAGE BUILDING LOGS for %s ===\n%s", spec.Name, buildLog.String())

	if err != nil {
		return fmt.Errorf("failed to build image %s: %w", spec.Name, err)
	}

	return nil
}

// Run replaces any container with the same name, runs the command through
// sh -c and collects the output.
func (d *DockerAdapter) Run(ctx context.Context, spec m.RunSpec) ([]byte, error) {
	log := d.logger.WithFields(logrus.Fields{"tool": spec.Tool, "container": spec.Container})

	if err := d.removeContainer(ctx, spec.Container); err != nil {
		return nil, err
	}

	mounts := make([]mount.Mount, 0, len(spec.Mounts))
	for _, mnt := range spec.Mounts {
		log.Infof("will mount %q to %q", mnt.Source, mnt.Target)
		mounts = append(mounts, mount.Mount{Type: mount.TypeBind, Source: mnt.Source, Target: mnt.Target})
	}

	created, err := d.api.ContainerCreate(ctx,
		&container.Config{Image: spec.Image, Cmd: []string{"sh", "-c", spec.Command}},
		&container.HostConfig{Mounts: mounts},
		nil, nil, spec.Container)
	if err != nil {
		return nil, fmt.Errorf("failed to create container %s: %w", spec.Container, err)
	}

	if !spec.Keep {
		defer func() {
			if err := d.api.ContainerRemove(context.WithoutCancel(ctx), created.ID, container.RemoveOptions{Force: true}); err != nil {
				log.WithError(err).Warn("failed to remove container")
			}
		}()
	}

	log.Infof("will now run container from image %s", spec.Image)

	if err := d.api.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("failed to start container %s: %w", spec.Container, err)
	}

	statusCh, errCh := d.api.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)

	var exitCode int64

	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("failed waiting for container %s: %w", spec.Container, err)
		}
	case status := <-statusCh:
		exitCode = status.StatusCode
	}

	logs, err := d.api.ContainerLogs(ctx, created.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read logs of %s: %w", spec.Container, err)
	}
	defer func() { _ = logs.Close() }()

	var out bytes.Buffer
	if _, err := stdcopy.StdCopy(&out, &out, logs); err != nil {
		return nil, fmt.Errorf("failed to read logs of %s: %w", spec.Container, err)
	}

	log.Infof("\n\n ========= START CONTAINER OUTPUT for %s =========\n%s", spec.Container, out.String())
	log.WithField("exit_code", exitCode).Infof("\n ========= END CONTAINER OUTPUT for %s =========", spec.Container)

	return out.Bytes(), nil
}

// Close closes the engine client.
func (d *DockerAdapter) Close() error {
	return d.api.Close()
}

func (d *DockerAdapter) imageExists(ctx context.Context, name string) (bool, error) {
	images, err := d.api.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to list images: %w", err)
	}

	want := name
	if !strings.Contains(want, ":") {
		want += ":latest"
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == want {
				return true, nil
			}
		}
	}

	return false, nil
}

func (d *DockerAdapter) removeContainer(ctx context.Context, name string) error {
	err := d.api.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
	if err != nil && !errdefs.IsNotFound(err) {
		return fmt.Errorf("failed to remove container %s: %w", name, err)
	}

	return nil
}

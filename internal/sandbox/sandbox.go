//go:generate stringer -type=ContainerStatus
//go:generate mockgen -source=sandbox.go -destination=mock_docker_test.go -package=sandbox

package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"memory-limit-workload/internal/memory"
	"memory-limit-workload/internal/sandbox/unix"
	"memory-limit-workload/internal/verdict"
)

type ContainerStatus int

const (
	// NotRan - The container has not been created yet.
	NotRan ContainerStatus = iota

	Created
	Running
	Killing
	Finished
	Removed
)

// MinimumMemory is the smallest memory limit docker accepts for a container.
const MinimumMemory = 6 * memory.Megabyte

// WorkloadPath is where the workload binary is mounted inside the container.
const WorkloadPath = "/workload/mle"

// DockerAPI is the part of *client.Client the sandbox drives.
type DockerAPI interface {
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error)
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerKill(ctx context.Context, containerID, signal string) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

type Request struct {
	// The internal id of the request, also used as the container name.
	ID string `validate:"required"`
	// The image the workload runs in. The workload is statically linked so
	// any image with a filesystem will do.
	Image string `validate:"required"`
	// Host path of the workload binary, bind mounted read only at
	// WorkloadPath.
	Binary string `validate:"required"`
	// The exact output that marks a completed run.
	Expected string
	// The memory ceiling becomes the container memory limit with swap
	// disabled. The time limit is enforced by killing the container.
	Limits verdict.Limits
	// The ExecutionProfile describes the container settings that are not
	// specific to this run.
	ExecutionProfile *Profile `validate:"required"`
}

func (r *Request) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", r.ID).
		Str("image", r.Image).
		Str("memoryLimit", r.Limits.Memory.String()).
		Dur("timeLimit", r.Limits.Time)
}

type Container struct {
	// ID and status are written by Run; other goroutines read them via
	// ContainerID and Status.
	ID     string
	mu     sync.RWMutex
	status ContainerStatus

	client  DockerAPI
	request *Request
}

func NewSandboxContainer(request *Request, dockerClient DockerAPI) *Container {
	return &Container{
		ID:      "",
		status:  NotRan,
		client:  dockerClient,
		request: request,
	}
}

func (d *Container) Status() ContainerStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.status
}

func (d *Container) setStatus(status ContainerStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debug().
		Str("containerID", shortID(d.ID)).
		Str("from", d.status.String()).
		Str("to", status.String()).
		Msg("container status changed")

	d.status = status
}

func (d *Container) ContainerID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.ID
}

// Run the sandbox container to completion and judge it. The container is
// always removed before returning.
func (d *Container) Run(ctx context.Context) (*verdict.Verdict, error) {
	if limit := d.request.Limits.Memory; limit > 0 && limit < MinimumMemory {
		return nil, errors.Errorf("memory limit %s is below the docker minimum of %s", limit, MinimumMemory)
	}

	if err := d.create(ctx); err != nil {
		return nil, err
	}

	defer func() {
		if err := d.remove(); err != nil {
			log.Err(err).Str("containerID", d.ID).Msg("failed to remove container")
		}
	}()

	if err := d.client.ContainerStart(ctx, d.ID, container.StartOptions{}); err != nil {
		return nil, errors.Wrap(err, "failed to start the container")
	}

	d.setStatus(Running)
	timeAtExecution := time.Now()

	timedOut, err := d.wait(ctx)

	if err != nil {
		return nil, err
	}

	elapsed := time.Since(timeAtExecution)
	d.setStatus(Finished)

	outcome, err := d.collect(ctx)

	if err != nil {
		return nil, err
	}

	outcome.TimedOut = timedOut
	outcome.Elapsed = elapsed

	result := verdict.Judge(*outcome, d.request.Expected, d.request.Limits)
	result.ID = d.request.ID

	log.Info().
		Str("containerID", shortID(d.ID)).
		Object("verdict", result).
		Msg("container judged")

	return result, nil
}

// create builds the container. Networking is disabled and the workload
// binary is the only thing mounted.
func (d *Container) create(ctx context.Context) error {
	binary, err := filepath.Abs(d.request.Binary)

	if err != nil {
		return errors.Wrap(err, "failed to resolve workload binary")
	}

	limit := d.request.Limits.Memory.Bytes()
	resources := container.Resources{
		Memory:     limit,
		MemorySwap: limit,
		NanoCPUs:   d.request.ExecutionProfile.NanoCPUs,
	}

	if d.request.ExecutionProfile.PidsLimit > 0 {
		pids := d.request.ExecutionProfile.PidsLimit
		resources.PidsLimit = &pids
	}

	create, err := d.client.ContainerCreate(
		ctx,
		&container.Config{
			Entrypoint:      []string{WorkloadPath},
			Image:           d.request.Image,
			NetworkDisabled: true,
		},
		&container.HostConfig{
			Runtime:   d.request.ExecutionProfile.Runtime.String(),
			Binds:     []string{fmt.Sprintf("%s:%s:ro", unix.ConvertPathToUnix(binary), WorkloadPath)},
			Resources: resources,
		},
		nil,
		nil,
		d.request.ID,
	)

	if err != nil {
		return errors.Wrap(err, "failed to create container")
	}

	d.mu.Lock()
	d.ID = create.ID
	d.mu.Unlock()

	d.setStatus(Created)

	for _, warning := range create.Warnings {
		log.Warn().Str("containerID", shortID(d.ID)).Msg(warning)
	}

	return nil
}

// wait blocks until the container stops. When the time limit passes first the
// container is killed and waited on again.
func (d *Container) wait(ctx context.Context) (timedOut bool, err error) {
	var (
		waitCtx context.Context
		cancel  context.CancelFunc
	)

	if d.request.Limits.Time > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, d.request.Limits.Time)
	} else {
		waitCtx, cancel = context.WithCancel(ctx)
	}

	defer cancel()

	statusCh, errCh := d.client.ContainerWait(waitCtx, d.ID, container.WaitConditionNotRunning)

	select {
	case status := <-statusCh:
		if status.Error != nil {
			return false, errors.Errorf("failed waiting for container: %s", status.Error.Message)
		}

		return false, nil
	case waitErr := <-errCh:
		if ctx.Err() != nil || !errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return false, errors.Wrap(waitErr, "failed waiting for container")
		}
	}

	d.setStatus(Killing)

	// A conflict means the container stopped on its own as the limit fired.
	if err := d.client.ContainerKill(ctx, d.ID, "SIGKILL"); err != nil {
		if !errdefs.IsConflict(err) {
			return true, errors.Wrap(err, "failed to kill container after time limit")
		}

		log.Debug().Str("containerID", shortID(d.ID)).Msg("container already stopped at time limit")
	}

	statusCh, errCh = d.client.ContainerWait(ctx, d.ID, container.WaitConditionNotRunning)

	select {
	case <-statusCh:
		return true, nil
	case waitErr := <-errCh:
		return true, errors.Wrap(waitErr, "failed waiting for killed container")
	}
}

// collect reads the exit state and the demultiplexed output of the stopped
// container.
func (d *Container) collect(ctx context.Context) (*verdict.Outcome, error) {
	inspect, err := d.client.ContainerInspect(ctx, d.ID)

	if err != nil {
		return nil, errors.Wrap(err, "failed to inspect container")
	}

	if inspect.ContainerJSONBase == nil || inspect.State == nil {
		return nil, errors.New("container inspect has no state")
	}

	outcome := &verdict.Outcome{
		ExitCode:  inspect.State.ExitCode,
		OOMKilled: inspect.State.OOMKilled,
	}

	// Exit codes above 128 are how docker reports a signal.
	if code := inspect.State.ExitCode; code > 128 && code < 128+65 {
		outcome.Signal = syscall.Signal(code - 128).String()
	}

	if outcome.OOMKilled {
		outcome.Peak = d.request.Limits.Memory
	}

	logs, err := d.client.ContainerLogs(ctx, d.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true})

	if err != nil {
		return nil, errors.Wrap(err, "failed to read container logs")
	}

	defer logs.Close()

	var stdout, stderr bytes.Buffer

	if _, err := stdcopy.StdCopy(&stdout, &stderr, logs); err != nil {
		return nil, errors.Wrap(err, "failed to demultiplex container logs")
	}

	outcome.Stdout = stdout.String()
	outcome.Stderr = stderr.String()

	return outcome, nil
}

// remove deletes the container. It runs on a fresh context so a cancelled run
// still cleans up.
func (d *Container) remove() error {
	if d.ID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.client.ContainerRemove(ctx, d.ID, container.RemoveOptions{Force: true}); err != nil {
		return errors.Wrap(err, "failed to remove container")
	}

	d.setStatus(Removed)
	return nil
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}

	return id
}

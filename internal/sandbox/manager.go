package sandbox

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"memory-limit-workload/internal/validation"
	"memory-limit-workload/internal/verdict"
)

type ContainerManager struct {
	// the limiter will be a buffered channel used to determine the number of possible
	// containers that can be executed at any one time. When the container is removed
	// the buffered channel will be popped, pushing will result in a block until the
	// pop has been executed.
	limiter      chan string
	dockerClient DockerAPI
	containers   sync.Map
}

func NewSandboxContainerManager(dockerClient DockerAPI, maxConcurrentContainers int) *ContainerManager {
	if maxConcurrentContainers < 1 {
		maxConcurrentContainers = 1
	}

	return &ContainerManager{
		limiter:      make(chan string, maxConcurrentContainers),
		dockerClient: dockerClient,
		containers:   sync.Map{},
	}
}

// Run blocks until a container slot is free, then runs the request to
// completion.
func (s *ContainerManager) Run(ctx context.Context, request *Request) (*verdict.Verdict, error) {
	if err := validation.Struct(request); err != nil {
		return nil, errors.Wrap(err, "invalid sandbox request")
	}

	select {
	case s.limiter <- request.ID:
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "waiting for a container slot")
	}

	defer func() { <-s.limiter }()

	if _, loaded := s.containers.LoadOrStore(request.ID, NewSandboxContainer(request, s.dockerClient)); loaded {
		return nil, errors.Errorf("request %s is already running", request.ID)
	}

	defer s.containers.Delete(request.ID)

	container, _ := s.containers.Load(request.ID)

	log.Info().Object("request", request).Msg("running workload in container")

	return container.(*Container).Run(ctx)
}

// Kill stops the container of a running request straight away. The pending
// Run call still judges and removes it.
func (s *ContainerManager) Kill(ctx context.Context, requestID string) error {
	value, ok := s.containers.Load(requestID)

	if !ok {
		return errors.Errorf("request %s is not running", requestID)
	}

	containerID := value.(*Container).ContainerID()

	if containerID == "" {
		return errors.Errorf("request %s has no container yet", requestID)
	}

	return s.dockerClient.ContainerKill(ctx, containerID, "SIGKILL")
}

// Running is the number of requests currently holding a container slot.
func (s *ContainerManager) Running() int {
	return len(s.limiter)
}

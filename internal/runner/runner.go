package runner

import (
	"bytes"
	"context"
	"os/exec"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"memory-limit-workload/internal/memory"
	"memory-limit-workload/internal/pid"
	"memory-limit-workload/internal/validation"
	"memory-limit-workload/internal/verdict"
)

const DefaultSampleInterval = 5 * time.Millisecond

type Request struct {
	// The internal id of the run, generated when empty.
	ID string
	// Path to the workload executable.
	Path string `validate:"required"`
	Args []string
	// Env is passed as is; a nil Env inherits the runner's environment.
	Env []string
	// The exact output that marks a completed run.
	Expected string
	Limits   verdict.Limits
	// AddressSpaceLimit additionally applies the memory ceiling as an address
	// space rlimit. Runtimes that reserve large virtual ranges up front (Go,
	// the JVM) may then fail before allocating anything.
	AddressSpaceLimit bool
}

func (r *Request) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", r.ID).
		Str("path", r.Path).
		Str("memoryLimit", r.Limits.Memory.String()).
		Dur("timeLimit", r.Limits.Time)
}

// Runner executes a workload as a child process and judges it against a
// memory ceiling and a time limit.
type Runner struct {
	sampleInterval time.Duration
}

func NewRunner(sampleInterval time.Duration) *Runner {
	if sampleInterval <= 0 {
		sampleInterval = DefaultSampleInterval
	}

	return &Runner{sampleInterval: sampleInterval}
}

// Run blocks until the workload has exited or been killed. An error is only
// returned when the workload could not be judged at all; every way the
// workload itself can fail is expressed in the verdict.
func (r *Runner) Run(ctx context.Context, request *Request) (*verdict.Verdict, error) {
	if err := validation.Struct(request); err != nil {
		return nil, errors.Wrap(err, "invalid run request")
	}

	id := request.ID
	if id == "" {
		id = uuid.NewString()
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)

	if request.Limits.Time > 0 {
		runCtx, cancel = context.WithTimeout(ctx, request.Limits.Time)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}

	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.Command(request.Path, request.Args...)
	cmd.Env = request.Env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	timeAtExecution := time.Now()

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start workload")
	}

	processID := cmd.Process.Pid

	log.Info().
		Object("request", request).
		Int("pid", processID).
		Msg("started workload")

	if request.AddressSpaceLimit && request.Limits.Memory > 0 {
		if err := limitAddressSpace(processID, request.Limits.Memory); err != nil {
			log.Warn().Err(err).Int("pid", processID).Msg("failed to apply address space limit")
		}
	}

	var (
		exceeded atomic.Bool
		timedOut atomic.Bool
		peak     memory.Memory
	)

	exited := make(chan any)
	group := errgroup.Group{}

	group.Go(func() error {
		defer close(exited)

		var exitErr *exec.ExitError
		if err := cmd.Wait(); err != nil && !errors.As(err, &exitErr) {
			return errors.Wrap(err, "failed waiting for workload")
		}

		return nil
	})

	group.Go(func() error {
		limit := request.Limits.Memory

		for sample := range pid.StreamPid(exited, processID, r.sampleInterval) {
			if sample.Memory > peak {
				peak = sample.Memory
			}

			if limit > 0 && sample.Memory > limit && !exceeded.Swap(true) {
				log.Info().
					Str("id", id).
					Str("rss", sample.Memory.String()).
					Str("limit", limit.String()).
					Msg("memory ceiling crossed, killing workload")

				_ = cmd.Process.Kill()
			}
		}

		return nil
	})

	group.Go(func() error {
		select {
		case <-exited:
		case <-runCtx.Done():
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
				timedOut.Store(true)
			}

			_ = cmd.Process.Kill()
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "run cancelled")
	}

	outcome := verdict.Outcome{
		Stdout:         stdout.String(),
		Stderr:         stderr.String(),
		ExitCode:       cmd.ProcessState.ExitCode(),
		MemoryExceeded: exceeded.Load(),
		TimedOut:       timedOut.Load(),
		Peak:           peak,
		Elapsed:        time.Since(timeAtExecution),
	}

	if status, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		outcome.Signal = status.Signal().String()
	}

	result := verdict.Judge(outcome, request.Expected, request.Limits)
	result.ID = id

	log.Info().Object("verdict", result).Msg("workload judged")

	return result, nil
}

package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"memory-limit-workload/internal/parser"
	"memory-limit-workload/internal/repository"
	"memory-limit-workload/internal/runner"
	"memory-limit-workload/internal/sandbox"
	"memory-limit-workload/internal/verdict"
)

// executor runs one round of the workload and returns its verdict.
type executor func(ctx context.Context, id string) (*verdict.Verdict, error)

type verdictPublisher interface {
	PublishVerdict(mode string, result *verdict.Verdict, limits verdict.Limits) error
}

type Checker struct {
	args      parser.Arguments
	execute   executor
	repo      repository.Repository
	publisher verdictPublisher
}

func localExecutor(args parser.Arguments, r *runner.Runner) executor {
	return func(ctx context.Context, id string) (*verdict.Verdict, error) {
		return r.Run(ctx, &runner.Request{
			ID:                id,
			Path:              args.Workload,
			Expected:          args.Expected,
			Limits:            args.Limits(),
			AddressSpaceLimit: args.AddressSpaceLimit,
		})
	}
}

func dockerExecutor(args parser.Arguments, manager *sandbox.ContainerManager) executor {
	profile := sandbox.GetProfileForMachine()

	return func(ctx context.Context, id string) (*verdict.Verdict, error) {
		return manager.Run(ctx, &sandbox.Request{
			ID:               id,
			Image:            args.Image,
			Binary:           args.Workload,
			Expected:         args.Expected,
			Limits:           args.Limits(),
			ExecutionProfile: profile,
		})
	}
}

// Check runs every round in order. Storage and publishing failures are
// logged and do not stop the remaining rounds.
func (c *Checker) Check(ctx context.Context) (*verdict.Summary, error) {
	summary := &verdict.Summary{}
	limits := c.args.Limits()

	for round := 1; round <= c.args.Rounds; round++ {
		result, err := c.execute(ctx, uuid.NewString())

		if err != nil {
			return nil, errors.Wrapf(err, "round %d failed", round)
		}

		summary.Add(result)

		log.Info().
			Int("round", round).
			Object("verdict", result).
			Msg("round finished")

		if c.repo != nil {
			if err := c.repo.InsertExecution(repository.NewExecution(c.args.Mode, result, limits)); err != nil {
				log.Err(err).Str("id", result.ID).Msg("failed to store execution")
			}
		}

		if c.publisher != nil {
			if err := c.publisher.PublishVerdict(c.args.Mode, result, limits); err != nil {
				log.Err(err).Str("id", result.ID).Msg("failed to publish verdict")
			}
		}
	}

	log.Info().Object("summary", summary).Msgf("%d rounds finished", c.args.Rounds)

	return summary, nil
}

// Expected reports whether the most severe verdict of the rounds is the one
// the run was configured to expect.
func (c *Checker) Expected(summary *verdict.Summary) bool {
	worst := summary.Worst()
	return worst != nil && worst.Status == c.args.ExpectStatus
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/docker/docker/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"memory-limit-workload/internal/config"
	"memory-limit-workload/internal/parser"
	"memory-limit-workload/internal/queue"
	"memory-limit-workload/internal/repository"
	"memory-limit-workload/internal/runner"
	"memory-limit-workload/internal/sandbox"
	"memory-limit-workload/internal/workload"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	args, err := parser.ParseArguments(os.Args[0], os.Args[1:])

	if err != nil {
		log.Fatal().Err(err).Msg("invalid arguments")
	}

	log.Info().
		Str("environment", string(config.GetCurrentEnvironment())).
		Str("footprint", workload.Default.Footprint().String()).
		Str("memoryLimit", args.MemoryLimit.String()).
		Msg("starting mle-check")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker := &Checker{args: args}

	switch args.Mode {
	case parser.ModeDocker:
		dockerClient, dockerErr := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())

		if dockerErr != nil {
			log.Fatal().Err(dockerErr).Msg("failed to create docker client")
		}

		defer dockerClient.Close()

		checker.execute = dockerExecutor(args, sandbox.NewSandboxContainerManager(dockerClient, args.MaxConcurrentContainers))
	default:
		checker.execute = localExecutor(args, runner.NewRunner(args.SampleInterval))
	}

	if args.DatabaseConn != "" {
		repo, repoErr := repository.NewRepository(args.DatabaseConn)

		if repoErr != nil {
			log.Fatal().Err(repoErr).Msg("failed to create database connection")
		}

		checker.repo = repo
	}

	if args.NsqAddress != "" {
		producer, nsqErr := queue.NewNsqProducer(&queue.NsqParams{Address: args.NsqAddress, Port: args.NsqPort})

		if nsqErr != nil {
			log.Fatal().Err(nsqErr).Msg("failed to create NSQ producer")
		}

		defer producer.Stop()

		checker.publisher = queue.NewVerdictPublisher(producer, args.NsqTopic)
	}

	summary, err := checker.Check(ctx)

	if err != nil {
		log.Fatal().Err(err).Msg("check failed")
	}

	if !checker.Expected(summary) {
		log.Error().
			Str("expected", args.ExpectStatus.String()).
			Str("actual", summary.Worst().Status.String()).
			Msg("workload did not end as expected")

		stop()
		os.Exit(1)
	}

	log.Info().Str("status", summary.Worst().Status.String()).Msg("workload ended as expected")
}

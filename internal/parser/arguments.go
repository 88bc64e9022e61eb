package parser

import (
	"time"

	"github.com/namsral/flag"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"memory-limit-workload/internal/memory"
	"memory-limit-workload/internal/validation"
	"memory-limit-workload/internal/verdict"
	"memory-limit-workload/internal/workload"
)

const (
	ModeLocal  = "local"
	ModeDocker = "docker"
)

// EnvPrefix is prepended to every flag name when it is read from the
// environment, e.g. MLE_MEMORY_LIMIT.
const EnvPrefix = "MLE"

type Arguments struct {
	Mode     string `validate:"oneof=local docker"`
	Workload string `validate:"required"`
	Image    string `validate:"required_if=Mode docker"`

	MemoryLimit       memory.Memory `validate:"gte=0"`
	AddressSpaceLimit bool
	TimeLimit         time.Duration `validate:"gte=0"`
	SampleInterval    time.Duration `validate:"gt=0"`

	Rounds   int `validate:"gte=1,lte=100"`
	Expected string
	// ExpectStatus is the worst verdict the harness must observe for the run
	// to count as a pass.
	ExpectStatus verdict.Status

	MaxConcurrentContainers int `validate:"gte=1"`
	DatabaseConn            string

	NsqAddress string
	NsqPort    int `validate:"gte=0,lte=65535"`
	NsqTopic   string
}

// ParseArguments parses the given command line, with MLE_ prefixed
// environment variables as fallbacks, and validates the result.
func ParseArguments(name string, arguments []string) (Arguments, error) {
	args := Arguments{}
	fs := flag.NewFlagSetWithEnvPrefix(name, EnvPrefix, flag.ContinueOnError)

	var memoryLimit, expectStatus string

	fs.StringVar(&args.Mode, "mode", ModeLocal, "where the workload runs: local or docker")
	fs.StringVar(&args.Workload, "workload", "./bin/mle", "path to the workload binary")
	fs.StringVar(&args.Image, "image", "gcr.io/distroless/static-debian12", "image used in docker mode")

	fs.StringVar(&memoryLimit, "memory-limit", "50m", "memory ceiling, 0 for unlimited")
	fs.BoolVar(&args.AddressSpaceLimit, "address-space-limit", false, "also apply the ceiling as RLIMIT_AS in local mode")
	fs.DurationVar(&args.TimeLimit, "time-limit", 30*time.Second, "wall clock limit, 0 for unlimited")
	fs.DurationVar(&args.SampleInterval, "sample-interval", 5*time.Millisecond, "how often resident memory is sampled")

	fs.IntVar(&args.Rounds, "rounds", 1, "number of times the workload is run")
	fs.StringVar(&args.Expected, "expected", workload.Sentinel, "output that marks a completed run")
	fs.StringVar(&expectStatus, "expect", "", "worst verdict required for success, derived from the ceiling when empty")

	fs.IntVar(&args.MaxConcurrentContainers, "max-concurrent-containers", 1, "")
	fs.StringVar(&args.DatabaseConn, "database-connection-string", "", "postgres connection string, disabled when empty")

	fs.StringVar(&args.NsqAddress, "nsq-address", "", "nsqd host, disabled when empty")
	fs.IntVar(&args.NsqPort, "nsq-port", 4150, "")
	fs.StringVar(&args.NsqTopic, "nsq-topic", "verdicts", "")

	if err := fs.Parse(arguments); err != nil {
		return args, errors.Wrap(err, "failed to parse arguments")
	}

	limit, err := memory.Parse(memoryLimit)

	if err != nil {
		return args, errors.Wrap(err, "failed to parse memory-limit")
	}

	args.MemoryLimit = limit
	args.ExpectStatus = verdict.Accepted

	if limit > 0 {
		args.ExpectStatus = verdict.MemoryLimitExceeded
	}

	if expectStatus != "" {
		if args.ExpectStatus, err = verdict.ParseStatus(expectStatus); err != nil {
			return args, errors.Wrap(err, "failed to parse expect")
		}
	}

	if err := validation.Struct(args); err != nil {
		return args, errors.Wrap(err, "invalid arguments")
	}

	log.Info().
		Str("mode", args.Mode).
		Str("workload", args.Workload).
		Str("memoryLimit", args.MemoryLimit.String()).
		Dur("timeLimit", args.TimeLimit).
		Int("rounds", args.Rounds).
		Str("expect", args.ExpectStatus.String()).
		Msg("parsed arguments")

	return args, nil
}

// Limits is the verdict ceiling described by the arguments.
func (a Arguments) Limits() verdict.Limits {
	return verdict.Limits{
		Memory: a.MemoryLimit,
		Time:   a.TimeLimit,
	}
}

//go:generate stringer -type=Status

package verdict

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"memory-limit-workload/internal/memory"
)

// Status values are ordered by severity, Accepted being the least severe.
type Status int

const (
	Accepted Status = iota
	MemoryLimitExceeded
	TimeLimitExceeded
	WrongAnswer
	RuntimeError
)

func (s Status) Short() string {
	switch s {
	case Accepted:
		return "AC"
	case MemoryLimitExceeded:
		return "MLE"
	case TimeLimitExceeded:
		return "TLE"
	case WrongAnswer:
		return "WA"
	default:
		return "RE"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Limits is the ceiling a workload is judged against. Zero values are
// unlimited.
type Limits struct {
	Memory memory.Memory `json:"memoryBytes" validate:"gte=0"`
	Time   time.Duration `json:"timeNs" validate:"gte=0"`
}

type Verdict struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	// Detail carries stderr for runtime errors and the unexpected output for
	// wrong answers.
	Detail   string        `json:"detail,omitempty"`
	Output   string        `json:"output"`
	Memory   memory.Memory `json:"memoryBytes"`
	Duration time.Duration `json:"durationNs"`
}

func (v *Verdict) Accepted() bool { return v.Status == Accepted }

// IsSevereThan reports whether v should replace other as the worst verdict of
// a set of rounds.
func (v *Verdict) IsSevereThan(other *Verdict) bool {
	if other == nil {
		return true
	}

	if v.Status != other.Status {
		return v.Status > other.Status
	}

	switch v.Status {
	case MemoryLimitExceeded:
		return v.Memory > other.Memory
	case TimeLimitExceeded:
		return v.Duration > other.Duration
	default:
		return false
	}
}

func (v *Verdict) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", v.ID).
		Str("status", v.Status.String()).
		Str("memory", v.Memory.String()).
		Dur("duration", v.Duration)

	if v.Detail != "" {
		e.Str("detail", v.Detail)
	}
}

// Outcome is what a runner observed about a single execution, before any
// judgement is applied.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Signal is set when the process was terminated by a signal.
	Signal string
	// MemoryExceeded is set when the runner itself killed the process for
	// crossing the memory ceiling.
	MemoryExceeded bool
	// OOMKilled is set when the kernel or container runtime reported an OOM
	// kill.
	OOMKilled bool
	TimedOut  bool
	Peak      memory.Memory
	Elapsed   time.Duration
}

const killedSignal = "killed"

// Allocation failure messages written by the common runtimes before they
// abort.
var outOfMemoryRE = regexp.MustCompile(`(?m)` + strings.Join([]string{
	`fatal error: runtime: out of memory`,
	`std::bad_alloc`,
	`java\.lang\.OutOfMemoryError`,
	`memory allocation of \d+ bytes failed`,
	`MemoryError`,
}, "|"))

// Judge turns an outcome into a verdict. The order of checks matters: a
// process killed for memory is never reported as a wrong answer even though
// its output is missing the expected text.
func Judge(o Outcome, expected string, limits Limits) *Verdict {
	v := &Verdict{
		Output:   o.Stdout,
		Memory:   o.Peak,
		Duration: o.Elapsed,
	}

	switch {
	case o.MemoryExceeded || o.OOMKilled:
		v.Status = MemoryLimitExceeded
	case o.TimedOut:
		v.Status = TimeLimitExceeded
	case o.ExitCode != 0 || o.Signal != "":
		v.Status, v.Detail = judgeAbnormalExit(o, limits)
	case !sameLines(o.Stdout, expected):
		v.Status, v.Detail = WrongAnswer, o.Stdout

		if strings.TrimSpace(o.Stderr) != "" {
			v.Status, v.Detail = RuntimeError, o.Stderr
		}
	default:
		v.Status = Accepted
	}

	if v.Accepted() {
		if limits.Time > 0 && o.Elapsed > limits.Time {
			v.Status = TimeLimitExceeded
		}

		if limits.Memory > 0 && o.Peak > limits.Memory {
			v.Status = MemoryLimitExceeded
		}
	}

	return v
}

func judgeAbnormalExit(o Outcome, limits Limits) (Status, string) {
	if outOfMemoryRE.MatchString(o.Stderr) {
		return MemoryLimitExceeded, o.Stderr
	}

	// Nothing inside the runner sent the kill, so with a ceiling in place the
	// likeliest sender is the kernel OOM killer.
	if o.Signal == killedSignal && limits.Memory > 0 {
		return MemoryLimitExceeded, "killed"
	}

	if strings.TrimSpace(o.Stderr) != "" {
		return RuntimeError, o.Stderr
	}

	if o.Signal != "" {
		return RuntimeError, fmt.Sprintf("terminated by signal: %s", o.Signal)
	}

	return RuntimeError, fmt.Sprintf("exit status %d", o.ExitCode)
}

// sameLines compares outputs line by line ignoring line endings and trailing
// whitespace.
func sameLines(actual, expected string) bool {
	a := splitLines(actual)
	e := splitLines(expected)

	if len(a) != len(e) {
		return false
	}

	for i := range a {
		if a[i] != e[i] {
			return false
		}
	}

	return true
}

func splitLines(value string) []string {
	value = strings.TrimRight(value, " \t\r\n")

	if value == "" {
		return nil
	}

	lines := strings.Split(value, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}

	return lines
}

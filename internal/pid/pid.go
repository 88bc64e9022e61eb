// Originally sourced from https://github.com/struCoder/pidusage (MIT), cut
// down to the resident memory figures the runner watches.
//
// PROC Reference - https://man7.org/linux/man-pages/man5/proc.5.html

package pid

import (
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"memory-limit-workload/internal/memory"
)

// SysInfo is a single sample of a process.
type SysInfo struct {
	State  ProcPidState
	Memory memory.Memory
	// Virtual is the virtual memory size, reported for diagnostics only.
	Virtual memory.Memory
}

type ProcPidState string

const (
	ProcPidRunning  ProcPidState = "R" // R  Running
	ProcPidSleeping ProcPidState = "S" // S  Sleeping in an interruptible wait
	ProcPidWaiting  ProcPidState = "D" // D  Waiting in uninterruptible disk sleep
	ProcPidZombie   ProcPidState = "Z" // Z  Zombie
	ProcPidStopped  ProcPidState = "T" // T  Stopped (on a signal)
	ProcPidDead     ProcPidState = "X" // X  Dead (from Linux 2.6.0 onward)
)

// Field positions in /proc/[pid]/stat counted from the state field, which is
// the first field after the parenthesised comm.
const (
	statFieldState = 0
	statFieldVsize = 20
	statFieldRss   = 21
)

var PageSize = int64(unix.Getpagesize())

var ErrUnsupportedPlatform = errors.New("unsupported platform")

func parseInt64(val string) int64 {
	value, _ := strconv.ParseInt(val, 10, 64)
	return value
}

// parseStat reads the contents of /proc/[pid]/stat. The comm field can hold
// spaces and parentheses, so fields are only split after its last ')'.
func parseStat(contents string) (*SysInfo, error) {
	end := strings.LastIndexByte(contents, ')')

	if end == -1 {
		return nil, errors.New("malformed stat: missing comm")
	}

	fields := strings.Fields(contents[end+1:])

	if len(fields) <= statFieldRss {
		return nil, errors.Errorf("malformed stat: %d fields after comm", len(fields))
	}

	return &SysInfo{
		State:   ProcPidState(fields[statFieldState]),
		Memory:  memory.Memory(parseInt64(fields[statFieldRss]) * PageSize),
		Virtual: memory.Memory(parseInt64(fields[statFieldVsize])),
	}, nil
}

func statFromProc(pid int) (*SysInfo, error) {
	procStatFileBytes, err := os.ReadFile(path.Join("/proc", strconv.Itoa(pid), "stat"))

	if err != nil {
		return nil, err
	}

	return parseStat(string(procStatFileBytes))
}

// GetStat will return the current memory sample for the given pid.
func GetStat(pid int) (*SysInfo, error) {
	if runtime.GOOS != "linux" {
		return nil, errors.Wrap(ErrUnsupportedPlatform, runtime.GOOS)
	}

	return statFromProc(pid)
}

// StreamPid samples the pid every interval until done is closed or the
// process can no longer be read, at which point the channel is closed.
func StreamPid(done <-chan any, pid int, interval time.Duration) <-chan *SysInfo {
	value := make(chan *SysInfo)

	go func() {
		defer close(value)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			state, err := GetStat(pid)

			if err != nil {
				log.Debug().Err(err).
					Int("pid", pid).
					Msg("stopped sampling pid")
				return
			}

			select {
			case <-done:
				return
			case value <- state:
			}

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()

	return value
}

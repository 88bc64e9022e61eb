package runner

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"memory-limit-workload/internal/memory"
)

func limitAddressSpace(pid int, limit memory.Memory) error {
	value := uint64(limit.Bytes())

	if err := unix.Prlimit(pid, unix.RLIMIT_AS, &unix.Rlimit{Cur: value, Max: value}, nil); err != nil {
		return errors.Wrap(err, "prlimit RLIMIT_AS")
	}

	return nil
}

//go:build !linux

package runner

import (
	"runtime"

	"github.com/pkg/errors"

	"memory-limit-workload/internal/memory"
)

func limitAddressSpace(_ int, _ memory.Memory) error {
	return errors.Errorf("address space limits are not supported on %s", runtime.GOOS)
}

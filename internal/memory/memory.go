package memory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Memory int64

const (
	Byte     Memory = 1
	Kilobyte        = 1024 * Byte
	Megabyte        = 1024 * Kilobyte
	Gigabyte        = 1024 * Megabyte
)

func (d Memory) Bytes() int64 { return int64(d) }

func (d Memory) Kilobytes() int64 { return int64(d) / int64(Kilobyte) }

func (d Memory) Megabytes() int64 { return int64(d) / int64(Megabyte) }

func (d Memory) Gigabytes() int64 { return int64(d) / int64(Gigabyte) }

// String renders the memory in the largest unit that divides it evenly.
func (d Memory) String() string {
	switch {
	case d != 0 && d%Gigabyte == 0:
		return fmt.Sprintf("%dGB", d.Gigabytes())
	case d != 0 && d%Megabyte == 0:
		return fmt.Sprintf("%dMB", d.Megabytes())
	case d != 0 && d%Kilobyte == 0:
		return fmt.Sprintf("%dKB", d.Kilobytes())
	default:
		return fmt.Sprintf("%dB", d.Bytes())
	}
}

// LimitExceeded is the error returned by the runner if and when the total
// allocated memory has been exceeded.
var LimitExceeded error = memoryLimitExceededError{}

type memoryLimitExceededError struct{}

func (memoryLimitExceededError) Error() string { return "memory limit exceeded" }

// ErrInvalidMemory is wrapped by every Parse failure.
var ErrInvalidMemory = errors.New("invalid memory value")

var units = map[string]Memory{
	"":  Byte,
	"b": Byte,
	"k": Kilobyte,
	"m": Megabyte,
	"g": Gigabyte,
}

// Parse reads values in the same shape docker accepts for --memory, e.g.
// 1024, 512k, 50m, 2g. A trailing b or ib is ignored so 50mb and 50MiB work
// too.
func Parse(value string) (Memory, error) {
	raw := strings.ToLower(strings.TrimSpace(value))

	if raw == "" {
		return 0, errors.Wrap(ErrInvalidMemory, "empty value")
	}

	number := strings.TrimRightFunc(raw, func(r rune) bool { return r < '0' || r > '9' })
	suffix := strings.TrimPrefix(raw, number)

	if len(suffix) > 1 {
		suffix = strings.TrimSuffix(strings.TrimSuffix(suffix, "b"), "i")
	}

	unit, ok := units[suffix]

	if !ok || number == "" {
		return 0, errors.Wrapf(ErrInvalidMemory, "unknown unit in %q", value)
	}

	amount, err := strconv.ParseInt(number, 10, 64)

	if err != nil || amount < 0 {
		return 0, errors.Wrapf(ErrInvalidMemory, "%q is not a positive size", value)
	}

	if amount > math.MaxInt64/int64(unit) {
		return 0, errors.Wrapf(ErrInvalidMemory, "%q does not fit in 64 bits", value)
	}

	return Memory(amount) * unit, nil
}

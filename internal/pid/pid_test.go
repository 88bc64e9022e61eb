package pid

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-limit-workload/internal/memory"
)

const sampleStat = "4242 (mle (v2) x) R 1 4242 4242 0 -1 4194560 1300 0 0 0 12 3 0 0 20 0 5 0 " +
	"889 734003200 2560 18446744073709551615 4194304 5000000 140720000000000 0 0 0 0 0 0 0 0 0 17 3 0 0 0 0 0\n"

func TestParseStat(t *testing.T) {
	t.Run("should read rss and state past a comm holding spaces and parentheses", func(t *testing.T) {
		info, err := parseStat(sampleStat)

		require.NoError(t, err)
		assert.Equal(t, ProcPidRunning, info.State)
		assert.Equal(t, memory.Memory(2560*PageSize), info.Memory)
		assert.Equal(t, memory.Memory(734003200), info.Virtual)
	})

	t.Run("should reject a stat line without comm", func(t *testing.T) {
		_, err := parseStat("4242 R 1")
		assert.Error(t, err)
	})

	t.Run("should reject a truncated stat line", func(t *testing.T) {
		_, err := parseStat("4242 (mle) R 1 2 3")
		assert.EqualError(t, err, "malformed stat: 4 fields after comm")
	})
}

func TestGetStat(t *testing.T) {
	if runtime.GOOS != "linux" {
		_, err := GetStat(os.Getpid())
		assert.ErrorIs(t, err, ErrUnsupportedPlatform)
		return
	}

	info, err := GetStat(os.Getpid())

	require.NoError(t, err)
	assert.Greater(t, info.Memory, memory.Memory(0))
}

func TestStreamPid(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("requires /proc")
	}

	t.Run("should stream samples until done is closed", func(t *testing.T) {
		done := make(chan any)
		samples := StreamPid(done, os.Getpid(), time.Millisecond)

		for i := 0; i < 3; i++ {
			sample, ok := <-samples
			require.True(t, ok)
			assert.Greater(t, sample.Memory, memory.Memory(0))
		}

		close(done)

		for range samples {
		}
	})

	t.Run("should close the stream when the pid does not exist", func(t *testing.T) {
		done := make(chan any)
		defer close(done)

		// pid_max never reaches this value.
		samples := StreamPid(done, 1<<30, time.Millisecond)

		_, ok := <-samples
		assert.False(t, ok)
	})
}

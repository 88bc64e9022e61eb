package workload

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-limit-workload/internal/memory"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestGrowReducedCardinality(t *testing.T) {
	w := Workload{Blocks: 10, Width: 100}

	collection := w.Grow()

	require.Len(t, collection, 10)
	assert.Equal(t, 10, cap(collection))

	for i, block := range collection {
		require.Len(t, block, 100)

		for _, value := range block {
			assert.Equal(t, int32(i), value, "block %d holds a foreign value", i)
		}
	}
}

func TestGrowBlocksDoNotShareBacking(t *testing.T) {
	collection := Workload{Blocks: 3, Width: 4}.Grow()

	collection[0][0] = 42

	assert.Equal(t, int32(1), collection[1][0])
	assert.Equal(t, int32(2), collection[2][0])
}

func TestGrowEmpty(t *testing.T) {
	assert.Empty(t, Workload{Blocks: 0, Width: 100}.Grow())
}

func TestRun(t *testing.T) {
	t.Run("should write only the sentinel once every block exists", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, Workload{Blocks: 10, Width: 100}.Run(&out))
		assert.Equal(t, Sentinel, out.String())
	})

	t.Run("should surface a failed sentinel write", func(t *testing.T) {
		err := Workload{Blocks: 1, Width: 1}.Run(failingWriter{})
		assert.ErrorContains(t, err, "failed to write sentinel")
	})
}

func TestDefault(t *testing.T) {
	assert.Equal(t, 4_000_000, Default.Blocks)
	assert.Equal(t, 100, Default.Width)

	// The full collection must sit far above a 50MB ceiling.
	assert.Greater(t, Default.Footprint(), 1500*memory.Megabyte)
}

func TestFootprint(t *testing.T) {
	assert.Equal(t, memory.Memory(10*24+10*100*4), Workload{Blocks: 10, Width: 100}.Footprint())
}

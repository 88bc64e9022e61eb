// Package workload grows a large nested collection one fixed-size block at a
// time. It exists to push a process past the memory ceiling of whatever
// supervisor launched it, so allocation failure is never handled here: the Go
// runtime or the supervisor terminates the process.
package workload

import (
	"io"
	"runtime"

	"github.com/pkg/errors"

	"memory-limit-workload/internal/memory"
)

// Sentinel is written once, and only once every block has been allocated.
const Sentinel = "end"

// sliceHeader is the size of a []int32 header on 64-bit platforms.
const sliceHeader = 24

type Workload struct {
	// Blocks is the target cardinality of the collection.
	Blocks int
	// Width is the number of int32 elements in every block.
	Width int
}

// Default is roughly 1.6GB of block data plus headers, well beyond any ceiling
// a judge would normally grant.
var Default = Workload{
	Blocks: 4_000_000,
	Width:  100,
}

// Grow reserves the full top-level capacity up front and then appends
// block i, filled with i, for every i in order.
func (w Workload) Grow() [][]int32 {
	collection := make([][]int32, 0, w.Blocks)

	for i := 0; i < w.Blocks; i++ {
		block := make([]int32, w.Width)

		for j := range block {
			block[j] = int32(i)
		}

		collection = append(collection, block)
	}

	return collection
}

// Run grows the collection and writes the sentinel. The collection stays
// reachable until the sentinel is written.
func (w Workload) Run(out io.Writer) error {
	collection := w.Grow()

	if _, err := io.WriteString(out, Sentinel); err != nil {
		return errors.Wrap(err, "failed to write sentinel")
	}

	runtime.KeepAlive(collection)
	return nil
}

// Footprint is the nominal memory demand of the full collection, ignoring
// allocator size classes and runtime overhead.
func (w Workload) Footprint() memory.Memory {
	blocks := int64(w.Blocks)
	return memory.Memory(blocks*sliceHeader + blocks*int64(w.Width)*4)
}

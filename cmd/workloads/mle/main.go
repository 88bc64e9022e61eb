// Command mle allocates memory until it is killed or until the full
// collection exists, in which case it prints "end". It takes no flags and
// reads no environment; a runner judges it purely on exit status and output.
package main

import (
	"fmt"
	"os"

	"memory-limit-workload/internal/workload"
)

func main() {
	if err := workload.Default.Run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

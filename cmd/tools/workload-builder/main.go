package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/namsral/flag"
)

var ENDCOLOR = "\033[0m"
var RED = "\033[31m"
var GREEN = "\033[32m"

// workloads maps a workload name to the package that builds it.
var workloads = map[string]string{
	"mle": "./cmd/workloads/mle",
}

func main() {
	if runtime.GOOS == "windows" {
		RED = ""
		ENDCOLOR = ""
		GREEN = ""
	}

	var (
		name    string
		output  string
		goarch  string
		verbose bool
	)

	flag.StringVar(&name, "workload", "mle", "")
	flag.StringVar(&output, "output", "./bin", "")
	flag.StringVar(&goarch, "goarch", runtime.GOARCH, "")
	flag.BoolVar(&verbose, "v", false, "")

	flag.Parse()

	pkg, ok := workloads[name]

	if !ok {
		log.Fatalf("workload '%s' does not exist\n", name)
	}

	buildWorkload(name, pkg, filepath.Join(output, name), goarch, verbose)
}

// buildWorkload produces a static linux binary so the same file runs on the
// host and bind mounted into a distroless container.
func buildWorkload(name, pkg, target, goarch string, verbose bool) {
	fmt.Printf("%sBuilding workload:%s %s%s%s\n", RED, ENDCOLOR, GREEN, name, ENDCOLOR)

	cmd := exec.Command("go", "build", "-trimpath", "-o", target)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0", "GOOS=linux", "GOARCH="+goarch)
	cmd.Stdout = nil
	cmd.Stderr = os.Stderr

	if verbose {
		cmd.Args = append(cmd.Args, "-v")
		cmd.Stdout = os.Stdout
	}

	cmd.Args = append(cmd.Args, pkg)

	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%sFinished workload:%s %s%s%s\n", RED, ENDCOLOR, GREEN, target, ENDCOLOR)
}

package sandbox

import (
	"memory-limit-workload/internal/config"
	"memory-limit-workload/internal/docker"
)

type Runtime string

const (
	Default Runtime = ""
	GVisor  Runtime = docker.GVisorRuntime
)

func (r Runtime) String() string { return string(r) }

// Profile holds the container settings that do not vary per run. The memory
// ceiling itself always comes from the request.
type Profile struct {
	// The runtime the container image will be used. Please reference Runtime
	// for more information about which runtimes are currently supported.
	Runtime Runtime

	// The maximum number of processes inside the container, 0 for the daemon
	// default.
	PidsLimit int64

	// CPU quota in units of 1e-9 CPUs, 0 for unlimited.
	NanoCPUs int64
}

// Profiles is a list of all currently supported profiles in the system
var Profiles = map[config.Environment]*Profile{
	config.Development: {
		Runtime:   Default,
		PidsLimit: 64,
	},
	config.Staging: {
		Runtime:   GVisor,
		PidsLimit: 64,
		NanoCPUs:  2e9,
	},
	config.Production: {
		Runtime:   GVisor,
		PidsLimit: 32,
		NanoCPUs:  1e9,
	},
}

// GetProfileForMachine returns the profile of the current environment,
// dropping back to the default runtime when gVisor is not registered with
// the local daemon.
func GetProfileForMachine() *Profile {
	profile := *Profiles[config.GetCurrentEnvironment()]

	if profile.Runtime == GVisor && !docker.IsGvisorInstalled() {
		profile.Runtime = Default
	}

	return &profile
}

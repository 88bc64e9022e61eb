package docker

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type dockerDaemonConfig struct {
	Runtimes map[string]struct {
		Path string `json:"path"`
	} `json:"runtimes"`
}

const (
	DaemonConfigPath = "/etc/docker/daemon.json"
	GVisorRuntime    = "runsc"
)

// IsGvisorInstalled reports whether the local docker daemon has the gVisor
// runtime registered.
func IsGvisorInstalled() bool {
	return IsRuntimeInstalled(DaemonConfigPath, GVisorRuntime)
}

// IsRuntimeInstalled reports whether the daemon configuration at path
// registers the named runtime.
func IsRuntimeInstalled(path, runtime string) bool {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false
	}

	fileBytes, err := os.ReadFile(path)

	if err != nil {
		log.Err(err).Str("path", path).Msg("failed to read daemon file but it exists")
		return false
	}

	daemon := &dockerDaemonConfig{}

	if err := json.Unmarshal(fileBytes, daemon); err != nil {
		log.Err(err).Str("path", path).Msg("failed to parse daemon file")
		return false
	}

	_, ok := daemon.Runtimes[runtime]
	return ok
}

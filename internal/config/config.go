package config

import (
	"os"
	"strings"
	"sync"
)

type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

const DefaultEnvironment = Development

// EnvironmentVariable selects the environment and, through it, the sandbox
// profile used for docker runs.
const EnvironmentVariable = "environment"

var currentEnvironment Environment

// envOnce is used to ensure concurrent tests only pull the value once at startup. While it is
// mainly used for tests, it also ensures safely with the chance the value is overwritten during
// runtime.
var envOnce sync.Once

// GetCurrentEnvironment returns the environment named by the environment
// variable, falling back to development for empty or unknown values.
func GetCurrentEnvironment() Environment {
	envOnce.Do(func() {
		currentEnvironment = ParseEnvironment(os.Getenv(EnvironmentVariable))
	})

	return currentEnvironment
}

func ParseEnvironment(value string) Environment {
	for _, e := range []Environment{Development, Staging, Production} {
		if strings.EqualFold(value, string(e)) {
			return e
		}
	}

	return DefaultEnvironment
}

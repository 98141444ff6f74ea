package testutil

import (
	"os"
	"strings"
	"testing"
)

// Environment is an isolated set of hexmap directories for one test
type Environment struct {
	ConfigDir string
	StateDir  string
}

// Isolate points config and state lookups at fresh temp directories and
// clears every HEXMAP_* and NO_COLOR variable for the duration of the test
func Isolate(t *testing.T) *Environment {
	t.Helper()

	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "HEXMAP_") || name == "NO_COLOR" {
			// t.Setenv restores the original value on cleanup
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}

	env := &Environment{
		ConfigDir: t.TempDir(),
		StateDir:  t.TempDir(),
	}
	t.Setenv("HEXMAP_CONFIG_DIR", env.ConfigDir)
	t.Setenv("HEXMAP_STATE_DIR", env.StateDir)
	return env
}

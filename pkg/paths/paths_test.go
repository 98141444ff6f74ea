package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom/config")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, "/custom/config", ConfigDir())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, "/xdg/config/hexmap", ConfigDir())
		assert.Equal(t, "/xdg/config/hexmap/config.toml", ConfigFilePath())
	})
}

func TestStateDir(t *testing.T) {
	t.Run("override with tilde", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		t.Setenv(EnvStateDir, "~/state")
		assert.Equal(t, filepath.Join(home, "state"), StateDir())
	})

	t.Run("xdg state home", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		t.Setenv("XDG_STATE_HOME", "/xdg/state")
		assert.Equal(t, "/xdg/state/hexmap/hexmap.log", LogFilePath())
	})
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "relative", expandHome("relative"))
}

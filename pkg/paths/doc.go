// Package paths provides centralized path handling for hexmap.
//
// hexmap keeps very little on disk: an optional user configuration file and
// a log file. Both follow the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/hexmap/config.toml
//   - State:  $XDG_STATE_HOME/hexmap/hexmap.log
//
// # Environment Variables
//
//   - HEXMAP_CONFIG_DIR: Override the config directory
//   - HEXMAP_STATE_DIR: Override the state directory
package paths

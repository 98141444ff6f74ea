// Package config loads hexmap settings with koanf.
//
// Layers are merged in order, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/hexmap/config.toml or --config
//  3. HEXMAP_* environment variables, e.g. HEXMAP_BREAK_ON_BOUNDS=true
//  4. command line flags that were set explicitly
//
// The result is decoded once into a Config and validated. It is never
// modified afterwards.
package config

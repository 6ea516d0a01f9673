// Package config loads one-shot defaults via viper (the directory to scan
// for combat logs, default worker pool size) and separately exposes the
// live, mutable "current log directory" cell described in §9: a setting
// that can be replaced at runtime by the external boundary layer without
// restarting the process, so it is guarded by its own mutex rather than
// folded into viper's static snapshot.
package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Defaults is the one-shot configuration snapshot loaded at startup.
type Defaults struct {
	LogDirectory string
	WorkerPoolSize int
}

// Load reads configuration from environment variables prefixed WOWLOG_ (and,
// if present, a wowlog.yaml/json/toml config file on the search path) via
// viper's standard env+file precedence. Missing values fall back to sane
// built-ins rather than erroring — this is a defaults loader, not a
// validator.
func Load() Defaults {
	v := viper.New()
	v.SetConfigName("wowlog")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/wowlog")
	v.SetEnvPrefix("wowlog")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("log_directory", "./logs")
	v.SetDefault("worker_pool_size", 0)

	_ = v.ReadInConfig() // absent config file is not an error

	return Defaults{
		LogDirectory:   v.GetString("log_directory"),
		WorkerPoolSize: v.GetInt("worker_pool_size"),
	}
}

// DirectorySetting is the mutable "current log directory" cell. It is
// seeded from a Defaults value at startup and may be swapped at runtime by
// the (external) boundary layer, e.g. in response to an admin request to
// point the scanner at a different folder.
type DirectorySetting struct {
	mu  sync.RWMutex
	dir string
}

// NewDirectorySetting seeds the cell with an initial directory.
func NewDirectorySetting(initial string) *DirectorySetting {
	return &DirectorySetting{dir: initial}
}

// Get returns the current directory.
func (d *DirectorySetting) Get() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dir
}

// Set replaces the current directory.
func (d *DirectorySetting) Set(dir string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dir = dir
}

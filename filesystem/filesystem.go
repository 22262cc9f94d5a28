// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Scripts, history and logs are all accessed through afero so that tests can run
// against an in-memory backend.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	Set(afero.NewOsFs())
}

// SetMemMapFs installs a fresh in-memory backend for unit tests.
func SetMemMapFs() {
	Set(afero.NewMemMapFs())
}

// Set replaces the backend with fs.
func Set(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// Package filesystem routes every disk access through a swappable afero
// backend, letting tests run against an in-memory tree instead of the host
// filesystem.
package filesystem

import "github.com/spf13/afero"

var active = afero.Afero{Fs: afero.NewOsFs()}

// API returns the afero handle all packages perform file operations through.
func API() afero.Afero {
	return active
}

// SetOsFs points the backend at the real operating system filesystem.
func SetOsFs() {
	active = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs swaps in a volatile in-memory backend. Test packages call this
// from init so services, config and caches never touch the host disk.
func SetMemMapFs() {
	active = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Package history provides the implementation for tracking and persisting completed acquisitions.
package history

import (
	"github.com/metafates/gache"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/where"
)

// cacher provides an abstracted, disk-backed registry for acquisition records.
var cacher = gache.New[map[string]*SavedAcquisition](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of acquisition records from the persistent store.
func Get() (map[string]*SavedAcquisition, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedAcquisition), nil
	}
	return cached, nil
}

// Save persists one acquired title to the history registry.
// Re-acquiring a title refreshes its record rather than duplicating it.
func Save(tag string, t title.Title, tracks int, protected bool) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedAcquisition(tag, t, tracks, protected)
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a specific acquisition record from the history registry.
func Remove(record *SavedAcquisition) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

package filesystem

import (
	"io"
	"os"
)

// GacheFs bridges gache persistence (the history ledger, query ranks and the
// response cache) onto the active afero backend, so cached state follows the
// same OS-or-memory switch as everything else.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

// Package auth provides a high-level API for persisting and retrieving per-service credentials from the system keyring.
package auth

import (
	"github.com/strand-dl/strand/constant"
	"github.com/zalando/go-keyring"
)

// Set persists a service's "user:pass" secret to the system keyring.
func Set(tag, secret string) error {
	return keyring.Set(constant.Strand, tag, secret)
}

// Get retrieves a service's "user:pass" secret from the system keyring.
func Get(tag string) (string, error) {
	return keyring.Get(constant.Strand, tag)
}

// Delete removes a service's secret from the system keyring.
func Delete(tag string) error {
	return keyring.Delete(constant.Strand, tag)
}

// IsNotFound reports whether an error denotes an absent keyring entry.
func IsNotFound(err error) bool {
	return err == keyring.ErrNotFound
}

// Package cache provides localized filesystem-based caching for transient service responses and tokens.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/strand-dl/strand/filesystem"
	"github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/where"
)

// TTL bounds the lifetime of every cache entry.
const TTL = 7 * 24 * time.Hour

// GenerateKey generates a deterministic SHA-256 hash from a value and scope pair for use as a cache identifier.
// The scope is typically the owning service tag.
func GenerateKey(value, scope string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(value, " ", "")) + scope
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(cacheKey string, target interface{}) bool {
	if !viper.GetBool(key.CacheEnable) {
		return false
	}

	fs := filesystem.API()
	path := filepath.Join(where.Cache(), cacheKey)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	return decoder.Decode(target) == nil
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(cacheKey string, data interface{}) error {
	if !viper.GetBool(key.CacheEnable) {
		return nil
	}

	fs := filesystem.API()
	path := filepath.Join(where.Cache(), cacheKey)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return fs.Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		fs := filesystem.API()
		dir := where.Cache()

		entries, err := fs.ReadDir(dir)
		if err != nil {
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if time.Since(entry.ModTime()) > TTL {
				_ = fs.Remove(filepath.Join(dir, entry.Name()))
			}
		}
	}()
}

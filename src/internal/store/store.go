package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maksimkurb/configurator/src/internal/errors"
)

// RawDocument maps section name to key name to raw string value.
type RawDocument map[string]map[string]string

// Store is a backing store holding a RawDocument. Implementations reopen the
// underlying file on every call and hold no state between calls.
type Store interface {
	// Read returns every section of the store. It fails with StoreNotFound
	// when the store does not exist.
	Read() (RawDocument, error)
	// Write merges doc into the persisted content: keys in doc are set,
	// everything else already in the store is left as it was. It fails with
	// StoreNotFound when the store does not exist.
	Write(doc RawDocument) error
	// Location identifies the store, usually a file path.
	Location() string
}

// Open returns a store for path, chosen by file extension: ".toml" files use
// TOML, everything else INI.
func Open(path string) Store {
	path = absPath(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLStore(path)
	default:
		return NewINIStore(path)
	}
}

func absPath(path string) string {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}

// checkExists returns StoreNotFound if path is missing or is a directory.
func checkExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewStoreNotFound(path)
		}
		return errors.NewStoreError("failed to stat store "+path, err)
	}
	if info.IsDir() {
		return errors.NewStoreError("store is a directory: "+path, nil)
	}
	return nil
}

// fileMode keeps the permissions of an existing file on rewrite.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// replaceFile writes data to a temporary file next to path and renames it
// over path, so a failed write leaves the old content in place. A symlinked
// path keeps its link and the target is replaced.
func replaceFile(path string, data []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewStoreError("failed to create temporary file for "+path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(fileMode(path)); err != nil {
		return errors.NewStoreError("failed to set mode of "+tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return errors.NewStoreError("failed to write "+tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.NewStoreError("failed to sync "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreError("failed to close "+tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.NewStoreError("failed to replace "+path, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

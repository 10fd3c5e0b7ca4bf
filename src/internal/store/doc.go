// Package store reads and writes the backing file behind a configuration.
//
// A store exposes its content as a RawDocument, section name to key name to
// raw string, and accepts the same shape back on Write. Writes are merges:
// only the keys handed in are set, so sections and keys that the caller
// does not know about are kept.
//
// Two formats are supported:
//   - INI (default): [section] headers with key=value lines; a Write only
//     changes the lines of keys whose value changes, so every other byte of
//     the file stays as it was
//   - TOML (".toml" files): top-level tables are sections
//
// Neither store creates a missing file; Read and Write both fail with
// StoreNotFound instead. Each call opens the file again, so there is no
// cached state between calls and no locking either. Files are replaced
// through a temporary file and a rename.
package store

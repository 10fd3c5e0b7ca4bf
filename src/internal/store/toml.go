package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	cerrors "github.com/maksimkurb/configurator/src/internal/errors"
)

// TOMLStore keeps a RawDocument in a TOML file. Top-level tables are
// sections and their scalar entries are keys. Nested tables, arrays and
// top-level scalars are not part of the RawDocument but survive a Write;
// comments do not.
type TOMLStore struct {
	path string
}

// NewTOMLStore returns a TOML store for path.
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

// Location returns the file path.
func (s *TOMLStore) Location() string {
	return s.path
}

func (s *TOMLStore) load() (map[string]any, error) {
	if err := checkExists(s.path); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, cerrors.NewStoreError("failed to read "+s.path, err)
	}

	tree := make(map[string]any)
	if err := toml.Unmarshal(content, &tree); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, cerrors.NewStoreError(fmt.Sprintf("failed to parse %s at line %d, column %d", s.path, row, col), err)
		}
		return nil, cerrors.NewStoreError("failed to parse "+s.path, err)
	}
	return tree, nil
}

// Read parses the file, stringifying scalar values.
func (s *TOMLStore) Read() (RawDocument, error) {
	tree, err := s.load()
	if err != nil {
		return nil, err
	}

	doc := make(RawDocument)
	for name, node := range tree {
		table, ok := node.(map[string]any)
		if !ok {
			continue
		}
		keys := make(map[string]string, len(table))
		for k, v := range table {
			if raw, ok := scalarString(v); ok {
				keys[k] = raw
			}
		}
		doc[name] = keys
	}
	return doc, nil
}

// Write sets every key of doc as a TOML string and rewrites the file. A key
// that currently holds a nested table or array is replaced.
func (s *TOMLStore) Write(doc RawDocument) error {
	tree, err := s.load()
	if err != nil {
		return err
	}

	for section, keys := range doc {
		table, ok := tree[section].(map[string]any)
		if !ok {
			table = make(map[string]any, len(keys))
			tree[section] = table
		}
		for k, v := range keys {
			table[k] = v
		}
	}

	content, err := toml.Marshal(tree)
	if err != nil {
		return cerrors.NewStoreError("failed to serialize "+s.path, err)
	}
	return replaceFile(s.path, content)
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Time:
		return t.Format(time.RFC3339Nano), true
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(t), true
	}
	return "", false
}

package config

import (
	"sort"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/errors"
)

// Schema maps section name to key name to declared type.
type Schema map[string]map[string]coerce.Type

// Sections returns the section names in lexical order.
func (s Schema) Sections() []string {
	return sortedKeys(s)
}

// Keys returns the keys declared for section in lexical order.
func (s Schema) Keys(section string) []string {
	return sortedKeys(s[section])
}

// TypeOf returns the declared type of section.key.
func (s Schema) TypeOf(section, key string) (coerce.Type, bool) {
	keys, ok := s[section]
	if !ok {
		return 0, false
	}
	t, ok := keys[key]
	return t, ok
}

// Clone returns a deep copy of s.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for section, keys := range s {
		c := make(map[string]coerce.Type, len(keys))
		for k, t := range keys {
			c[k] = t
		}
		out[section] = c
	}
	return out
}

// Validate checks that s declares at least one section, that every section
// declares at least one key, that names are usable as subcommand and flag
// names, and that every type tag is supported.
func (s Schema) Validate() error {
	decl := schemaDecl{Sections: make(map[string]map[string]string, len(s))}
	for section, keys := range s {
		names := make(map[string]string, len(keys))
		for k, t := range keys {
			names[k] = t.String()
		}
		decl.Sections[section] = names
	}
	if err := decl.validate(); err != nil {
		return err
	}

	for _, section := range s.Sections() {
		for _, key := range s.Keys(section) {
			if t := s[section][key]; !t.Valid() {
				return errors.NewUnknownType(t.String()).At(section, key)
			}
		}
	}
	return nil
}

// TypeNames returns the schema with type tags replaced by their names.
func (s Schema) TypeNames() map[string]map[string]string {
	out := make(map[string]map[string]string, len(s))
	for section, keys := range s {
		names := make(map[string]string, len(keys))
		for k, t := range keys {
			names[k] = t.String()
		}
		out[section] = names
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

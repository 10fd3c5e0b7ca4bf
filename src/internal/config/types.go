package config

import (
	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/store"
)

// RawDocument is untyped section/key/string content as held by a store.
type RawDocument = store.RawDocument

// Section maps key name to typed value.
type Section map[string]coerce.Value

// Document is a typed configuration. Documents returned by an Engine have
// exactly the sections and keys of its Schema.
type Document map[string]Section

// Get returns the value at section.key.
func (d Document) Get(section, key string) (coerce.Value, bool) {
	sec, ok := d[section]
	if !ok {
		return coerce.Value{}, false
	}
	v, ok := sec[key]
	return v, ok
}

// Natives returns d with every value replaced by its Go native (string,
// int64, float64 or bool), ready for JSON or TOML encoding.
func (d Document) Natives() map[string]map[string]any {
	out := make(map[string]map[string]any, len(d))
	for name, sec := range d {
		out[name] = sec.Natives()
	}
	return out
}

// Natives returns s with every value replaced by its Go native.
func (s Section) Natives() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = v.Interface()
	}
	return out
}

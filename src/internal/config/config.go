package config

import (
	"fmt"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/errors"
	"github.com/maksimkurb/configurator/src/internal/store"
)

// Engine converts between a store's RawDocument and typed Documents under
// a fixed Schema.
//
// An Engine keeps no state between calls: Load re-reads the store and Save
// re-reads it before writing. Save is a read-modify-write without any lock,
// so two concurrent Save calls race and the last writer wins. Callers that
// share a store across goroutines or processes must serialise Save
// themselves.
type Engine struct {
	schema Schema
	store  store.Store
}

// New returns an engine for schema backed by st. The schema is copied and
// validated, see Schema.Validate.
func New(schema Schema, st store.Store) (*Engine, error) {
	if st == nil {
		return nil, errors.NewInternalError("nil store", nil)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		schema: schema.Clone(),
		store:  st,
	}, nil
}

// Open returns an engine for schema backed by the file at path, see store.Open.
func Open(schema Schema, path string) (*Engine, error) {
	return New(schema, store.Open(path))
}

// Schema returns a copy of the engine's schema.
func (e *Engine) Schema() Schema {
	return e.schema.Clone()
}

// Location returns the location of the backing store.
func (e *Engine) Location() string {
	return e.store.Location()
}

func (e *Engine) String() string {
	return fmt.Sprintf("configurator(%s)", e.store.Location())
}

// Convert validates raw against the schema and coerces every declared value.
// It fails on the first missing section, missing key or bad value. Sections
// and keys not in the schema are dropped.
func (e *Engine) Convert(raw RawDocument) (Document, error) {
	return convert[map[string]string](e.schema, raw, coerce.Coerce)
}

// Validate re-checks a typed document against the schema. Values already of
// the declared type pass unchanged; string values are parsed.
func (e *Engine) Validate(doc Document) (Document, error) {
	return convert[Section](e.schema, doc, coerce.CoerceValue)
}

// Stringify returns the raw form of doc.
func (e *Engine) Stringify(doc Document) RawDocument {
	raw := make(RawDocument, len(doc))
	for name, sec := range doc {
		keys := make(map[string]string, len(sec))
		for k, v := range sec {
			keys[k] = coerce.Format(v)
		}
		raw[name] = keys
	}
	return raw
}

// Load reads and converts the whole store. A missing store fails with
// StoreNotFound; it is never created.
func (e *Engine) Load() (Document, error) {
	raw, err := e.store.Read()
	if err != nil {
		return nil, err
	}
	return e.Convert(raw)
}

// Save merges partial into the stored configuration. Every section present
// in partial replaces the stored section as a whole, so it must carry every
// declared key. The existing store must itself be valid. Nothing is written
// unless the merged document validates.
func (e *Engine) Save(partial Document) error {
	existing, err := e.Load()
	if err != nil {
		return err
	}

	for name, sec := range partial {
		existing[name] = sec
	}

	merged, err := e.Validate(existing)
	if err != nil {
		return err
	}

	return e.store.Write(e.Stringify(merged))
}

// convert is the fail-fast walk shared by Convert and Validate. Sections and
// keys are visited in lexical order.
func convert[S ~map[string]T, T any](schema Schema, doc map[string]S, coerceFn func(T, coerce.Type) (coerce.Value, error)) (Document, error) {
	out := make(Document, len(schema))
	for _, name := range schema.Sections() {
		section, ok := doc[name]
		if !ok {
			return nil, errors.NewMissingSection(name)
		}

		keys := schema[name]
		converted := make(Section, len(keys))
		for _, key := range sortedKeys(keys) {
			v, ok := section[key]
			if !ok {
				return nil, errors.NewMissingKey(name, key)
			}
			value, err := coerceFn(v, keys[key])
			if err != nil {
				return nil, locate(err, name, key)
			}
			converted[key] = value
		}
		out[name] = converted
	}
	return out, nil
}

func locate(err error, section, key string) error {
	if e, ok := errors.As(err); ok {
		return e.At(section, key)
	}
	return errors.Wrap(errors.ErrCodeInvalidValue, fmt.Sprintf("failed to convert %s.%s", section, key), err)
}

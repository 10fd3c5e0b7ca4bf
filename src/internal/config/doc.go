// Package config maps an untyped INI-style configuration onto typed values
// under a declared schema, and back.
//
// A Schema declares, for every section, the keys it must contain and the
// type of each key. An Engine pairs a Schema with a backing store and
// converts whole documents in both directions.
//
// # Reading
//
// Load reads the store and converts it. Conversion is fail-fast: the first
// missing section, missing key or unparsable value aborts the call, and
// sections or keys the schema does not mention are silently dropped.
//
//	engine, err := config.Open(config.Schema{
//	    "network": {"port": coerce.Integer, "enabled": coerce.Boolean},
//	}, "/opt/etc/configurator/config.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := engine.Load()
//	port, _ := doc.Get("network", "port") // port.Int() == 8080
//
// # Writing
//
// Save takes a partial document, usually one section. Each section given
// replaces the stored section as a whole, so it must carry every declared
// key. The existing store is loaded and validated first; if either the
// store or the merged result is invalid nothing is written. Sections of
// the file outside the schema are left as they are.
//
// # Schema files
//
// LoadSchema reads a declaration from TOML, YAML or JSON, mapping section to
// key to one of "string", "integer", "float" or "boolean".
package config

// Package api provides a REST API over a configuration engine.
//
// Endpoints:
//   - GET /api/v1/schema: section to key to type name
//   - GET /api/v1/config: the whole typed configuration
//   - GET /api/v1/config/{section}: one section
//   - PUT /api/v1/config/{section}: replace one section
//
// A PUT body is a JSON object holding every key of the section. Values may
// be JSON numbers and booleans or strings, which are parsed like values in
// the configuration file. Requests are accepted from loopback and private
// networks only.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": {"network": {"port": 8080, "enabled": true}}
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "validation_failed",
//	    "message": "[MISSING_KEY] missing key: enabled (at network.enabled)",
//	    "details": {"kind": "MISSING_KEY", "section": "network", "key": "enabled"}
//	  }
//	}
package api

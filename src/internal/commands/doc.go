// Package commands implements CLI command handlers for configurator.
//
// Each command implements the Runner interface:
//   - Init(): Parse arguments
//   - Run(): Execute the command against the configuration engine
//   - Name(): Return command name for routing
//   - Summary(): One line for the usage text
//
// # Available Commands
//
//   - <section>: one command per schema section; every declared key is a
//     typed flag and the given keys replace the section in the store
//   - show: print the typed configuration as ini, json or toml
//   - serve: run the HTTP API server
//
// # Example Usage
//
//	configurator -config /opt/etc/configurator/config.ini network --port 8080 --enabled yes
//	configurator show -format json -section network
//
// A section command writes only the keys it was given, and the store keeps
// a section only when it is complete, so leaving out a key of the section
// fails with a missing key error and nothing is written.
package commands

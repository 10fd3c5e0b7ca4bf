// Package log provides simple leveled logging for configurator.
//
// Logging belongs to the command-line and HTTP layers only; the coerce,
// config and store packages report failures through returned errors and
// never log.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures and exceptions
//
// # Example Usage
//
//	log.Infof("Updated section %s in %s", section, path)
//	log.Errorf("Failed to save: %v", err)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//	log.Debugf("Schema: %v", schema)
//
// Output control:
//
//	log.SetForceStdErr(true) // Send all logs to stderr
//	log.SetOutput(&out, &errOut) // Plain, uncolored output for tests
//
// Errors go to stderr and everything else to stdout unless SetForceStdErr
// is set. All functions are safe for concurrent use.
package log

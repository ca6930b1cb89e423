package driftgrid

import "log"

// globalDebug gates diagnostic logging for conditions that are handled
// gracefully but worth knowing about during development (bad color strings,
// failed media loads, missing project art).
var globalDebug bool

// SetDebug enables or disables diagnostic logging.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugf logs a diagnostic when debug mode is on.
func debugf(format string, args ...any) {
	if globalDebug {
		log.Printf(format, args...)
	}
}

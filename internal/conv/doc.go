// Package conv collects tiny helper functions that are not part of the public API
// but aid internal conversions.
//
// At the moment it only exposes `AsDuration` which coerces the loosely typed values
// found in configuration files and environment variables into a time.Duration.
package conv

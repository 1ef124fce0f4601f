// Package logger sets up the logrus logger used for diagnostics on stderr.
package logger

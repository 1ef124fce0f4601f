package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	EnvLevel = "LOG_LEVEL"
	EnvDebug = "DEBUG"
	EnvFile  = "LOG_FILE"
)

// Options configures New.
type Options struct {
	// Level is a logrus level name; empty falls back to LOG_LEVEL, then DEBUG.
	Level string
	// File mirrors output to a file when set; empty falls back to LOG_FILE.
	File string
	// Output defaults to os.Stderr.
	Output io.Writer
	Tag    string
}

// Level resolves the log level from an explicit name or the environment.
func Level(name string) logrus.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(os.Getenv(EnvLevel)))
	}
	if name == "" {
		if debug := os.Getenv(EnvDebug); debug == "1" || strings.EqualFold(debug, "true") {
			name = "debug"
		}
	}
	if name == "warning" {
		name = "warn"
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// New creates the diagnostic logger. The returned function closes the log file, if any.
func New(options Options) (*logrus.Logger, func() error) {
	ret := logrus.New()
	ret.SetFormatter(&TagFormatter{Tag: options.Tag})
	ret.SetLevel(Level(options.Level))
	output := options.Output
	if output == nil {
		output = os.Stderr
	}
	ret.SetOutput(output)

	closer := func() error { return nil }
	location := strings.TrimSpace(options.File)
	if location == "" {
		location = strings.TrimSpace(os.Getenv(EnvFile))
	}
	if location == "" {
		return ret, closer
	}
	location = expandHome(location)
	if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
		ret.WithError(err).Warn("failed to create directory for log file; using stderr only")
		return ret, closer
	}
	file, err := os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		ret.WithError(err).Warn("failed to open log file; using stderr only")
		return ret, closer
	}
	ret.SetOutput(io.MultiWriter(output, file))
	ret.WithField("file", location).Debug("logging to file enabled")
	return ret, file.Close
}

func expandHome(location string) string {
	if !strings.HasPrefix(location, "~") {
		return location
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return location
	}
	return filepath.Join(home, strings.TrimPrefix(location, "~"))
}

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
)

const (
	// DefaultName is the config used when no name is given.
	DefaultName = "config.json"
	// DirEnv overrides the config directory.
	DirEnv = "MCP_BRIDGE_CONFIG_DIR"

	legacyDir = "mcp_http_bridge"
)

// ErrNotFound reports that no config could be located.
var ErrNotFound = errors.New("config file not found")

// NotFoundError lists the locations searched for a config.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	builder := strings.Builder{}
	builder.WriteString("Config file not found. Searched:\n")
	for _, location := range e.Searched {
		builder.WriteString("  - " + location + "\n")
	}
	builder.WriteString("\nCreate a config file with:\n  mcp-bridge init")
	return builder.String()
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Locator finds config files.
type Locator struct {
	Dir     string
	WorkDir string
	fs      afs.Service
	logger  logrus.FieldLogger
}

// Locate returns the location of the named config; see the package documentation for the search order.
func (l *Locator) Locate(ctx context.Context, name string) (string, error) {
	if name != "" {
		if strings.Contains(name, "://") {
			return name, nil
		}
		if expanded := ExpandPath(name); filepath.IsAbs(expanded) && l.exists(ctx, expanded) {
			return expanded, nil
		}
	}

	var candidates []string
	if name == "" {
		candidates = append(candidates, filepath.Join(l.Dir, DefaultName))
	} else {
		candidates = append(candidates, filepath.Join(l.Dir, name))
		if !strings.HasSuffix(name, ".json") {
			candidates = append(candidates, filepath.Join(l.Dir, name+".json"))
		}
	}
	for _, candidate := range candidates {
		if l.exists(ctx, candidate) {
			return candidate, nil
		}
	}

	local := filepath.Join(l.WorkDir, DefaultName)
	if l.exists(ctx, local) {
		l.logger.Warnf("Using %s from current directory (deprecated), please move to %s", DefaultName, filepath.Join(l.Dir, DefaultName))
		return local, nil
	}
	legacy := filepath.Join(l.WorkDir, legacyDir, DefaultName)
	if l.exists(ctx, legacy) {
		l.logger.Warnf("Using config from %s (deprecated), please move to %s", filepath.Join(legacyDir, DefaultName), filepath.Join(l.Dir, DefaultName))
		return legacy, nil
	}
	return "", &NotFoundError{Searched: []string{l.Dir, local, legacy}}
}

func (l *Locator) exists(ctx context.Context, location string) bool {
	ok, err := l.fs.Exists(ctx, location)
	return err == nil && ok
}

// DefaultDir returns $MCP_BRIDGE_CONFIG_DIR or ~/.config/mcp-bridge.
func DefaultDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return ExpandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "mcp-bridge")
	}
	return filepath.Join(home, ".config", "mcp-bridge")
}

// ExpandPath replaces a leading ~ with the user home directory.
func ExpandPath(location string) string {
	if location != "~" && !strings.HasPrefix(location, "~/") {
		return location
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return location
	}
	return filepath.Join(home, strings.TrimPrefix(location, "~"))
}

// NewLocator creates a locator for dir; an empty dir means DefaultDir.
func NewLocator(dir string, logger logrus.FieldLogger) *Locator {
	if dir == "" {
		dir = DefaultDir()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	return &Locator{Dir: dir, WorkDir: workDir, fs: afs.New(), logger: logger}
}

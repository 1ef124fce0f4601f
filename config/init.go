package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrExists reports an attempt to overwrite a config without force.
var ErrExists = errors.New("config already exists")

// ExampleURL is written by Init when no URL is given.
const ExampleURL = "http://your-server.example.com/mcp"

// Entry describes a config file in the config directory.
type Entry struct {
	Name    string
	URL     string
	Default bool
}

// Example returns the config written by Init.
func Example(URL string) *Config {
	if URL == "" {
		URL = ExampleURL
	}
	return &Config{
		URL:     URL,
		Headers: map[string]string{"Authorization": "Bearer YOUR_TOKEN_HERE"},
	}
}

// Init writes an example config named name (config.json by default) and returns its location.
func (l *Locator) Init(ctx context.Context, name, URL string, force bool) (string, error) {
	if name == "" {
		name = DefaultName
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	location := filepath.Join(l.Dir, name)
	if l.exists(ctx, location) {
		if !force {
			return location, fmt.Errorf("%w: %v", ErrExists, location)
		}
		if err := l.fs.Delete(ctx, location); err != nil {
			return "", fmt.Errorf("failed to replace config %v: %w", location, err)
		}
	}
	data, err := json.MarshalIndent(Example(URL), "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	if err = os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config dir %v: %w", l.Dir, err)
	}
	if err = l.fs.Upload(ctx, location, os.FileMode(0o600), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write config %v: %w", location, err)
	}
	return location, nil
}

// List returns the configs in the config directory sorted by name. A missing directory yields no entries.
func (l *Locator) List(ctx context.Context) ([]Entry, error) {
	if !l.exists(ctx, l.Dir) {
		return nil, nil
	}
	objects, err := l.fs.List(ctx, l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", l.Dir, err)
	}
	var entries []Entry
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(object.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		entries = append(entries, Entry{
			Name:    object.Name(),
			URL:     filepath.Join(l.Dir, object.Name()),
			Default: object.Name() == DefaultName,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

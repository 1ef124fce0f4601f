package config

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"reflect"
	"strings"
	"time"

	"github.com/geosp/mcp-bridge/internal/conv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/viant/afs"
)

// Environment variables overriding config values.
const (
	EnvURL            = "MCP_BRIDGE_URL"
	EnvTimeout        = "MCP_BRIDGE_TIMEOUT"
	EnvConnectTimeout = "MCP_BRIDGE_CONNECT_TIMEOUT"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads and validates the config at URL. YAML is used for .yaml and .yml files, JSON otherwise.
func Load(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	return Decode(data, configType(URL))
}

// Decode decodes config data of the given type ("json" or "yaml") and applies environment overrides.
func Decode(data []byte, configType string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, configType, err)
	}
	for key, env := range map[string]string{"url": EnvURL, "timeout": EnvTimeout, "connectTimeout": EnvConnectTimeout} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(durationHook))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func durationHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType {
		return data, nil
	}
	if d, ok := conv.AsDuration(data); ok {
		return d, nil
	}
	return nil, fmt.Errorf("invalid duration: %v", data)
}

func configType(URL string) string {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

package bridge

import (
	"context"
	"errors"
	"strings"

	"github.com/geosp/mcp-bridge/config"
)

const commandLineSource = "(command line)"

func (o *Options) locator() *config.Locator {
	return config.NewLocator(config.ExpandPath(o.ConfigDir), o.logger())
}

// loadConfig locates and loads the config, then applies command line overrides.
// With --url and no config anywhere, the command line alone is used.
func (o *Options) loadConfig(ctx context.Context) (*config.Config, string, error) {
	log := o.logger()
	location, err := o.locator().Locate(ctx, o.Config)
	var cfg *config.Config
	switch {
	case err == nil:
		if cfg, err = config.Load(ctx, location); err != nil {
			return nil, location, err
		}
		log.Infof("Loaded config from %s", location)
	case errors.Is(err, config.ErrNotFound) && o.Config == "" && o.URL != "":
		location = commandLineSource
		cfg = &config.Config{}
	default:
		return nil, "", err
	}
	if err = o.apply(cfg); err != nil {
		return nil, location, err
	}
	return cfg, location, nil
}

func (o *Options) apply(cfg *config.Config) error {
	if o.URL != "" {
		cfg.URL = o.URL
	}
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	if o.ConnectTimeout > 0 {
		cfg.ConnectTimeout = o.ConnectTimeout
	}
	headers, err := o.headerMap()
	if err != nil {
		return err
	}
	if len(headers) > 0 && cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}
	for name, value := range headers {
		for existing := range cfg.Headers {
			if strings.EqualFold(existing, name) {
				delete(cfg.Headers, existing)
			}
		}
		cfg.Headers[name] = value
	}
	return cfg.Validate()
}

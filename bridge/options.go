package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/geosp/mcp-bridge/logger"
	"github.com/sirupsen/logrus"
)

// Options represents the command line of mcp-bridge.
type Options struct {
	Config         string        `short:"c" long:"config" description:"config name, path or URL (default: config.json in the config dir)"`
	ConfigDir      string        `long:"config-dir" description:"config directory (default: $MCP_BRIDGE_CONFIG_DIR or ~/.config/mcp-bridge)"`
	URL            string        `short:"u" long:"url" description:"mcp url, overrides the config url"`
	Headers        []string      `short:"H" long:"header" description:"extra request header 'Name: value', repeatable"`
	Timeout        time.Duration `long:"timeout" description:"overall request timeout, e.g. 60s"`
	ConnectTimeout time.Duration `long:"connect-timeout" description:"connect timeout, e.g. 10s"`
	LogLevel       string        `long:"log-level" description:"log level: trace, debug, info, warn, error"`
	LogFile        string        `long:"log-file" description:"mirror diagnostics to a file"`
	Version        bool          `long:"version" description:"show version"`

	Init        InitCommand        `command:"init" description:"create an example config in the config directory"`
	ListConfigs ListConfigsCommand `command:"list-configs" description:"list configs in the config directory"`
	Check       CheckCommand       `command:"check" description:"load the config and probe the server with initialize"`

	env *environment
}

// environment carries process resources shared by the commands.
type environment struct {
	ctx         context.Context
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	log         *logrus.Logger
	closeLogger func() error
}

func (o *Options) logger() *logrus.Logger {
	if o.env.log == nil {
		o.env.log, o.env.closeLogger = logger.New(logger.Options{
			Level:  o.LogLevel,
			File:   o.LogFile,
			Output: o.env.stderr,
		})
	}
	return o.env.log
}

func (o *Options) close() {
	if o.env.closeLogger != nil {
		_ = o.env.closeLogger()
	}
}

// headerMap parses the repeated --header values.
func (o *Options) headerMap() (map[string]string, error) {
	ret := map[string]string{}
	for _, header := range o.Headers {
		name, value, ok := strings.Cut(header, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", header)
		}
		ret[http.CanonicalHeaderKey(name)] = strings.TrimSpace(value)
	}
	return ret, nil
}

// NewOptions creates options bound to the given process resources.
func NewOptions(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) *Options {
	ret := &Options{env: &environment{ctx: ctx, stdin: stdin, stdout: stdout, stderr: stderr}}
	ret.Init.options = ret
	ret.ListConfigs.options = ret
	ret.Check.options = ret
	return ret
}

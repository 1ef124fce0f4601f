package bridge

import (
	"errors"
	"fmt"

	"github.com/geosp/mcp-bridge/config"
)

// InitCommand creates an example config.
type InitCommand struct {
	Name  string `short:"n" long:"name" description:"config file name (default: config.json)"`
	URL   string `short:"s" long:"server-url" description:"server url written to the config"`
	Force bool   `short:"f" long:"force" description:"overwrite an existing config"`

	options *Options
}

func (c *InitCommand) Execute(args []string) error {
	o := c.options
	out := o.env.stdout
	locator := o.locator()
	location, err := locator.Init(o.env.ctx, c.Name, c.URL, c.Force)
	if err != nil {
		if errors.Is(err, config.ErrExists) {
			_, _ = fmt.Fprintf(out, "Config already exists: %s\n", location)
			_, _ = fmt.Fprintln(out, "   Use --name to create a different config or --force to overwrite it")
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "Created config file: %s\n", location)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintf(out, "1. Edit the config file:\n   vi %s\n", location)
	_, _ = fmt.Fprintln(out, "2. Update the 'url' and 'headers' with your server details")
	_, _ = fmt.Fprintln(out, "3. Run the bridge:")
	if c.Name != "" {
		_, _ = fmt.Fprintf(out, "   mcp-bridge --config %s\n", c.Name)
	} else {
		_, _ = fmt.Fprintln(out, "   mcp-bridge")
	}
	return nil
}

// ListConfigsCommand lists configs in the config directory.
type ListConfigsCommand struct {
	options *Options
}

func (c *ListConfigsCommand) Execute(args []string) error {
	o := c.options
	out := o.env.stdout
	locator := o.locator()
	entries, err := locator.List(o.env.ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(out, "No config files found in %s\n", locator.Dir)
		_, _ = fmt.Fprintln(out, "Create a config with: mcp-bridge init")
		return nil
	}
	_, _ = fmt.Fprintf(out, "Available configs in %s:\n\n", locator.Dir)
	for _, entry := range entries {
		marker := ""
		if entry.Default {
			marker = "  (default)"
		}
		_, _ = fmt.Fprintf(out, "  - %s%s\n", entry.Name, marker)
	}
	_, _ = fmt.Fprintln(out, "\nUse with: mcp-bridge --config <name>")
	return nil
}

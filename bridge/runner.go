package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is the mcp-bridge release, overridden at build time.
var Version = "0.2.0"

// Run executes mcp-bridge with command line args (without the program name).
func Run(args []string) error {
	_ = godotenv.Load()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return RunWithIO(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithIO executes mcp-bridge using the supplied streams in place of the process ones.
func RunWithIO(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	options := NewOptions(ctx, stdin, stdout, stderr)
	defer options.close()

	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "mcp-bridge"
	parser.ShortDescription = "stdio to HTTP/SSE bridge for MCP servers"
	parser.SubcommandsOptional = true
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(stdout, flagsErr.Message)
			return nil
		}
		return err
	}
	if parser.Active != nil {
		// the command already ran as part of parsing
		return nil
	}
	if options.Version {
		_, _ = fmt.Fprintf(stdout, "mcp-bridge version %s\n", Version)
		return nil
	}
	return options.serve()
}

func (o *Options) serve() error {
	ctx := o.env.ctx
	log := o.logger()
	cfg, _, err := o.loadConfig(ctx)
	if err != nil {
		return err
	}
	srv, err := New(ctx, cfg, o.env.stdin, o.env.stdout, log)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

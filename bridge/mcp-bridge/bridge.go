package main

import (
	"fmt"
	"os"

	"github.com/geosp/mcp-bridge/bridge"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[Bridge] %v\n", err)
		os.Exit(1)
	}
}

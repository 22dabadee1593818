// Command weyfar searches travel offers and enriches flights with airline names.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/cli"
)

// Set by the linker: -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

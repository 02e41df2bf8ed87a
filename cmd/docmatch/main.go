// Command docmatch matches device descriptions against regulatory PDFs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docmatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/docmatch/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetLoader(app.Loader)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

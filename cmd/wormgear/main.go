package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pzfreo/wormgear-sub002/internal/cli"
	"github.com/pzfreo/wormgear-sub002/internal/cli/commands"
)

// version is stamped by the release build with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	root, app := cli.NewRoot(version)
	root.AddCommand(commands.All(app)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

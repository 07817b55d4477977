// Command dealerdesk is the admin client for the vehicle-listing backend.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/dealerdesk/internal/api"
	"github.com/rshade/dealerdesk/internal/cli"
	"github.com/rshade/dealerdesk/internal/session"
	"github.com/rshade/dealerdesk/pkg/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitAborted = 2
	exitAuth    = 3
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status. Scripts can tell a
// missing or expired login apart from a declined confirmation.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, session.ErrNotLoggedIn), errors.Is(err, api.ErrUnauthorized):
		return exitAuth
	case errors.Is(err, cli.ErrAborted):
		return exitAborted
	default:
		return exitError
	}
}

func main() {
	if err := run(); err != nil {
		os.Exit(exitCode(err))
	}
}

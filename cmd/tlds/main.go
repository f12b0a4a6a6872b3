package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/factsmission/tlds/internal/cli"
	tldserrors "github.com/factsmission/tlds/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before the root hook loads config and hands the
	// logger to subcommands.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode distinguishes bad input (2) from runtime failures (1).
func exitCode(err error) int {
	switch tldserrors.GetCode(err) {
	case tldserrors.ErrCodeInvalidInput, tldserrors.ErrCodeInvalidIRI, tldserrors.ErrCodeInvalidFormat,
		tldserrors.ErrCodeInvalidConfig, tldserrors.ErrCodeUnsupportedFormat,
		tldserrors.ErrCodeFileNotFound, tldserrors.ErrCodeNotFound:
		return 2
	default:
		return 1
	}
}

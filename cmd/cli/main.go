package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/tuneit/internal/app"
	"github.com/specialistvlad/tuneit/internal/cli"
	"github.com/specialistvlad/tuneit/internal/tune"
)

// exitInterrupted is the conventional status for a SIGINT abort.
const exitInterrupted = 130

// main is the entrypoint for the tuneit application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		switch {
		case errors.As(err, &exitErr):
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(os.Stderr, "Interrupt detected, exiting...")
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	tuneApp := app.NewApp(outW, cfg, tune.NewLoader())
	return tuneApp.Run(ctx)
}

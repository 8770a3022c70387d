package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/dimgrid/internal/app"
	"github.com/specialistvlad/dimgrid/internal/cli"
	"github.com/specialistvlad/dimgrid/internal/hclload"
)

// main is the entrypoint for the dimgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The report goes to outW; usage text, logs and diagnostics go to errW.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked | %v", r)
		}
	}()

	dimgridApp := app.NewApp(outW, errW, appConfig, hclload.NewLoader())
	_, err = dimgridApp.Run(context.Background())
	return err
}

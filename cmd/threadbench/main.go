package main

import (
	"context"
	"os"

	"github.com/agbru/threadbench/internal/app"
	apperrors "github.com/agbru/threadbench/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		if !app.IsUsageError(err) {
			apperrors.HandleRunError(err, os.Stderr, nil)
		}
		os.Exit(apperrors.ExitCodeFor(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}

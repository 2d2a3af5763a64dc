// Command pitaylor-seq approximates π with the Leibniz series on a single
// goroutine and reports the elapsed time.
//
// Usage:
//
//	pitaylor-seq [flags] <steps>
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agbru/pitaylor/internal/app"
	"github.com/agbru/pitaylor/internal/config"
	apperrors "github.com/agbru/pitaylor/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout, filepath.Base(os.Args[0]))
		return
	}

	application, err := app.New(os.Args, os.Stderr, config.ModeSequential)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleError(err, os.Stderr))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}

// Package main is the albumtag command.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/listenupapp/albumtag/internal/cli"
	"github.com/listenupapp/albumtag/internal/errors"
)

var version = "dev"

func main() {
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}

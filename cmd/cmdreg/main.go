package main

import (
	"context"
	"os"

	"github.com/pseudomuto/cmdreg/pkg/cmd"
	"github.com/pseudomuto/cmdreg/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	fx.New(
		fx.NopLogger,
		fx.Supply(&cmd.Version{
			Version:   version,
			Commit:    commit,
			Timestamp: date,
		}),
		fx.Provide(
			func() context.Context { return context.Background() },
			func() []string { return os.Args },
		),
		config.Module,
		cmd.Module,
	).Run()
}

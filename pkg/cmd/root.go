package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pseudomuto/cmdreg/pkg/config"
	"github.com/pseudomuto/cmdreg/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates the cmdreg CLI application and executes it with the given
// arguments once the fx application starts, shutting down with exit code 1 on
// failure and 0 otherwise.
//
// Global Flags:
//   - --config, -c: configuration file (env CMDREG_CONFIG, default cmdreg.yaml)
//   - --debug: log debug events (registration, dispatch) to stderr
//
// Example usage:
//
//	cmdreg shell
//	cmdreg --config ch.yaml shell --echo < session.sql
//	cmdreg exec setup.sql
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		printVersion(cmd.Root().Writer, p.Version)
	}

	app := &cli.Command{
		Name:  "cmdreg",
		Usage: "An interactive SQL shell extensible with registered script commands",
		Description: `cmdreg runs SQL against SQLite or ClickHouse and lets Lua scripts register
themselves as named commands that take over matching statements.`,
		Version:  p.Version.Version,
		Flags:    rootFlags(),
		Before:   configureLogging,
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the cmdreg config file",
			Sources: cli.EnvVars(consts.ConfigFileEnv),
			Value:   consts.DefaultConfigFile,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log debug events to stderr",
		},
	}
}

func configureLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	return ctx, nil
}

// loadConfig returns cfg unless --config names another file.
func loadConfig(cmd *cli.Command, cfg *config.Config) (*config.Config, error) {
	if cmd.IsSet("config") {
		return config.Load(cmd.String("config"))
	}

	if cfg == nil {
		return config.Default()
	}

	return cfg, nil
}

func versionCmd(v *Version) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			printVersion(cmd.Root().Writer, v)
			return nil
		},
	}
}

func printVersion(w io.Writer, v *Version) {
	fmt.Fprintln(w, "Version:", v.Version)
	fmt.Fprintln(w, "Commit:", v.Commit)
	fmt.Fprintln(w, "Date:", v.Timestamp)
}

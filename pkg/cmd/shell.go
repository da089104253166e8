package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pseudomuto/cmdreg/pkg/config"
	"github.com/pseudomuto/cmdreg/pkg/shell"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// shellCmd creates the interactive session command. Statements are read from
// stdin, one per line, until EOF or exit.
//
// Flags:
//   - --driver, --dsn: override the configured database
//   - --sandbox: run against a throwaway ClickHouse container (requires Docker)
//   - --echo: echo each statement after the prompt. Defaults to on when stdin
//     is a pipe or file rather than a terminal.
//
// Examples:
//
//	cmdreg shell
//	cmdreg shell --driver clickhouse --dsn clickhouse://localhost:9000/default
//	cmdreg shell --sandbox
func shellCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive SQL session",
		Flags: sessionFlags(
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "echo statements read from stdin",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			echo := cmd.Bool("echo")
			if !cmd.IsSet("echo") {
				echo = piped(cmd.Root().Reader)
			}

			sess, err := openSession(ctx, cmd, cfg, echo)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close(ctx) }()

			if version, err := sess.Version(ctx); err == nil {
				fmt.Fprintf(cmd.Root().Writer, "Connected to %s\n\n", version)
			}

			return sess.Run(ctx, cmd.Root().Reader)
		},
	}
}

// piped reports whether r is a file that is not attached to a terminal.
func piped(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && !term.IsTerminal(int(f.Fd()))
}

func sessionFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  "driver",
			Usage: "the database driver (sqlite or clickhouse)",
		},
		&cli.StringFlag{
			Name:  "dsn",
			Usage: "the database data source name",
		},
		&cli.BoolFlag{
			Name:  "sandbox",
			Usage: "run against a temporary ClickHouse container",
		},
	}, extra...)
}

func openSession(ctx context.Context, cmd *cli.Command, cfg *config.Config, echo bool) (*shell.Session, error) {
	cfg, err := loadConfig(cmd, cfg)
	if err != nil {
		return nil, err
	}

	// Copy before applying flags so the provided config is left untouched.
	overridden := *cfg
	if cmd.IsSet("driver") {
		overridden.Database.Driver = cmd.String("driver")
	}
	if cmd.IsSet("dsn") {
		overridden.Database.DSN = cmd.String("dsn")
	}
	if cmd.Bool("sandbox") {
		overridden.Database.Sandbox.Enabled = true
	}

	if err := overridden.Validate(); err != nil {
		return nil, err
	}

	return shell.New(ctx, shell.Options{
		Config: &overridden,
		Out:    cmd.Root().Writer,
		Echo:   echo,
	})
}

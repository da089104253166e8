package cmd

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/config"
	"github.com/urfave/cli/v3"
)

// execCmd creates a command that runs a file of statements, one per line,
// without prompting. Execution stops at the first failing statement. Use - to
// read statements from stdin.
//
// Examples:
//
//	cmdreg exec setup.sql
//	echo "script greet world" | cmdreg exec -
func execCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Execute a file of statements",
		ArgsUsage: "<file>",
		Flags:     sessionFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one file argument is required")
			}

			in, closeFn, err := openInput(cmd, cmd.Args().First())
			if err != nil {
				return err
			}
			defer closeFn()

			sess, err := openSession(ctx, cmd, cfg, false)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close(ctx) }()

			return sess.RunScript(ctx, in)
		},
	}
}

func openInput(cmd *cli.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.Root().Reader, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open file: %s", path)
	}

	return f, func() { _ = f.Close() }, nil
}

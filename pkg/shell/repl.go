package shell

import (
	"bufio"
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

var errorBanner = color.New(color.FgRed, color.Bold)

// Run executes the configured startup statements and then reads statements
// from in until EOF or exit. Errors are reported and the session continues.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if err := s.startup(ctx, false); err != nil {
		return ignoreExit(err)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		_ = s.printf("%s", s.cfg.Prompt)
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if s.echo {
			_ = s.printf("%s\n", line)
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}

			s.report(err)
		}
	}

	_ = s.printf("\n")
	return errors.Wrap(scanner.Err(), "failed to read input")
}

// RunScript executes the startup statements and then every line of in,
// stopping at the first failure. exit ends the script successfully.
func (s *Session) RunScript(ctx context.Context, in io.Reader) error {
	if err := s.startup(ctx, true); err != nil {
		return ignoreExit(err)
	}

	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		if err := s.Execute(ctx, scanner.Text()); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}

			return errors.Wrapf(err, "line %d", n)
		}
	}

	return errors.Wrap(scanner.Err(), "failed to read input")
}

func (s *Session) startup(ctx context.Context, strict bool) error {
	for _, stmt := range s.cfg.Startup {
		err := s.Execute(ctx, stmt)
		switch {
		case err == nil:
		case errors.Is(err, ErrExit), strict:
			return errors.Wrapf(err, "startup statement %q", stmt)
		default:
			s.report(err)
		}
	}

	return nil
}

func (s *Session) report(err error) {
	_, _ = errorBanner.Fprintf(s.out, "Error: %v\n", err)
}

func ignoreExit(err error) error {
	if errors.Is(err, ErrExit) {
		return nil
	}

	return err
}

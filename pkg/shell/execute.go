package shell

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/args"
	"github.com/pseudomuto/cmdreg/pkg/registration"
	"github.com/pseudomuto/cmdreg/pkg/utils"
)

type builtin func(ctx context.Context, s *Session, stmt string, argv []string) error

var builtins = map[string]builtin{
	"script":   runScript,
	"define":   define,
	"undefine": undefine,
	"show":     show,
	"exit":     exit,
	"quit":     exit,
}

// Execute runs one statement. Blank lines and -- comments are ignored and a
// trailing semicolon is dropped. Substitution variables are expanded, then the
// statement is offered to the registered commands, the builtins and finally
// the database, in that order.
func (s *Session) Execute(ctx context.Context, line string) error {
	stmt := strings.TrimSpace(line)
	if stmt == "" || strings.HasPrefix(stmt, "--") {
		return nil
	}

	stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
	stmt = s.vars.Substitute(stmt)
	slog.Debug("executing statement", "statement", stmt)

	handled, err := s.host.Dispatch(ctx, registration.GlobalScope, registration.Statement(stmt))
	if handled || err != nil {
		return err
	}

	argv := args.Tokenize(stmt)
	if len(argv) == 0 {
		return nil
	}

	if path, ok := strings.CutPrefix(argv[0], "@"); ok && path != "" {
		return s.scripts.Run(ctx, path, append([]string{path}, argv[1:]...))
	}

	if fn, ok := builtins[strings.ToLower(argv[0])]; ok {
		if err := fn(ctx, s, stmt, argv); !errors.Is(err, errNotBuiltin) {
			return err
		}
	}

	return s.sql(ctx, stmt)
}

// errNotBuiltin lets a builtin pass a statement on to the database, e.g.
// "show tables" on ClickHouse.
var errNotBuiltin = errors.New("not a builtin")

func runScript(ctx context.Context, s *Session, _ string, argv []string) error {
	if len(argv) < 2 {
		return errors.New("usage: script <file> [args...]")
	}

	return s.scripts.Run(ctx, argv[1], argv[1:])
}

func define(_ context.Context, s *Session, stmt string, argv []string) error {
	rest := strings.TrimSpace(stmt[len(argv[0]):])
	if rest == "" {
		for _, name := range s.vars.Names() {
			value, _ := s.vars.Get(name)
			_ = utils.WriteLine(s.out, fmt.Sprintf("DEFINE %s = %q", name, value))
		}

		return nil
	}

	name, value, assign := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return errors.Errorf("invalid variable name: %q", name)
	}

	if !assign {
		value, ok := s.vars.Get(name)
		if !ok {
			return errors.Errorf("symbol %s is undefined", strings.ToUpper(name))
		}

		return utils.WriteLine(s.out, fmt.Sprintf("DEFINE %s = %q", strings.ToUpper(name), value))
	}

	value = strings.TrimSpace(value)
	for _, quote := range []rune{'"', '\''} {
		if len(value) >= 2 && strings.HasPrefix(value, string(quote)) && strings.HasSuffix(value, string(quote)) {
			value = utils.Trim(value, quote)
			break
		}
	}

	s.vars.Set(name, value)
	return nil
}

func undefine(_ context.Context, s *Session, _ string, argv []string) error {
	if len(argv) < 2 {
		return errors.New("usage: undefine NAME...")
	}

	for _, name := range argv[1:] {
		s.vars.Remove(name)
	}

	return nil
}

func show(_ context.Context, s *Session, _ string, argv []string) error {
	if len(argv) != 2 || !strings.EqualFold(argv[1], "commands") {
		return errNotBuiltin
	}

	names := s.Commands()
	if len(names) == 0 {
		return utils.WriteLine(s.out, "no commands registered")
	}

	for _, name := range names {
		if err := utils.WriteLine(s.out, name); err != nil {
			return err
		}
	}

	return nil
}

func exit(context.Context, *Session, string, []string) error {
	return ErrExit
}

package script

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/Shopify/go-lua"
	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/registration"
	"github.com/pseudomuto/cmdreg/pkg/substvar"
)

// Extension is appended to script paths that have none.
const Extension = ".lua"

type (
	// ExecFunc executes a statement in the hosting session.
	ExecFunc func(ctx context.Context, statement string) error

	// Options configure a Runner.
	Options struct {
		// Dispatcher receives every registration.run call.
		Dispatcher *registration.Dispatcher

		// Vars backs the substvar table. A private store is used when nil.
		Vars *substvar.Store

		// Out receives ctx.write and utl.writeLine output.
		Out io.Writer

		// Exec backs utl.run. Scripts calling utl.run fail when nil.
		Exec ExecFunc

		// Dir is the script library searched for relative paths that do not
		// exist in the working directory.
		Dir string
	}

	// Runner loads and runs hosted scripts.
	Runner struct {
		dispatcher *registration.Dispatcher
		vars       *substvar.Store
		out        io.Writer
		exec       ExecFunc
		dir        string
	}
)

// NewRunner creates a Runner from opts.
//
// Example:
//
//	runner := script.NewRunner(script.Options{
//		Dispatcher: registration.NewDispatcher(env),
//		Vars:       vars,
//		Out:        os.Stdout,
//		Dir:        cfg.Scripts.Path,
//	})
//
//	err := runner.Run(ctx, "greet.lua", []string{"greet.lua", "-cmdReg", "hello"})
func NewRunner(opts Options) *Runner {
	r := &Runner{
		dispatcher: opts.Dispatcher,
		vars:       opts.Vars,
		out:        opts.Out,
		exec:       opts.Exec,
		dir:        opts.Dir,
	}

	if r.vars == nil {
		r.vars = substvar.New()
	}

	if r.out == nil {
		r.out = io.Discard
	}

	return r
}

// Resolve returns the file a script path refers to. Extension is appended when
// path has none. Relative paths are looked up in the working directory first
// and then in the script library.
func (r *Runner) Resolve(path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += Extension
	}

	candidates := []string{path}
	if !filepath.IsAbs(path) && r.dir != "" {
		candidates = append(candidates, filepath.Join(r.dir, path))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", errors.Errorf("script %s not found", path)
}

// Run loads the script at path and executes it with argv as its invocation.
// argv[0] is conventionally the script name.
func (r *Runner) Run(ctx context.Context, path string, argv []string) error {
	if r.dispatcher == nil {
		return errors.New("script runner has no dispatcher")
	}

	file, err := r.Resolve(path)
	if err != nil {
		return err
	}

	s := newSession(ctx, r, argv)
	if err := lua.LoadFile(s.state, file, ""); err != nil {
		return errors.Wrapf(err, "failed to load script %s", file)
	}

	if err := s.state.ProtectedCall(0, 0, 0); err != nil {
		return errors.Wrapf(err, "script %s failed", file)
	}

	return nil
}

package script

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Shopify/go-lua"
	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/registration"
	"github.com/pseudomuto/cmdreg/pkg/utils"
)

// callbacksGlobal holds the Lua functions handed to registration.run, keyed by
// reference number.
const callbacksGlobal = "_CMDREG_CALLBACKS"

// session is one Lua state and the invocation it was created for. Registered
// commands keep their session alive after the script returns.
type session struct {
	runner *Runner
	state  *lua.State
	ctx    context.Context
	refs   int
}

func newSession(ctx context.Context, r *Runner, argv []string) *session {
	s := &session{
		runner: r,
		state:  lua.NewState(),
		ctx:    ctx,
	}

	lua.OpenLibraries(s.state)

	s.state.NewTable()
	s.state.SetGlobal(callbacksGlobal)

	s.setArgs(argv)
	s.openLibrary("registration", []lua.RegistryFunction{
		{Name: "run", Function: s.registrationRun},
		{Name: "unregister", Function: s.registrationUnregister},
	})
	s.openLibrary("ctx", []lua.RegistryFunction{
		{Name: "write", Function: s.write},
	})
	s.openLibrary("utl", []lua.RegistryFunction{
		{Name: "writeLine", Function: s.writeLine},
		{Name: "run", Function: s.run},
		{Name: "readFile", Function: readFile},
		{Name: "trim", Function: trimmer(utils.Trim)},
		{Name: "ltrim", Function: trimmer(utils.LTrim)},
		{Name: "rtrim", Function: trimmer(utils.RTrim)},
		{Name: "coalesce", Function: coalesce},
	})
	s.openLibrary("substvar", []lua.RegistryFunction{
		{Name: "exists", Function: s.varExists},
		{Name: "get", Function: s.varGet},
		{Name: "set", Function: s.varSet},
		{Name: "remove", Function: s.varRemove},
	})

	return s
}

func (s *session) openLibrary(name string, fns []lua.RegistryFunction) {
	s.state.NewTable()
	lua.SetFunctions(s.state, fns, 0)
	s.state.SetGlobal(name)
}

func (s *session) setArgs(argv []string) {
	s.pushStrings(argv)
	s.state.SetGlobal("args")
}

func (s *session) pushStrings(values []string) {
	s.state.CreateTable(len(values), 0)
	for i, v := range values {
		s.state.PushString(v)
		s.state.RawSetInt(-2, i+1)
	}
}

// ref stores the function at index in the callbacks table and returns its key.
func (s *session) ref(index int) int {
	index = s.state.AbsIndex(index)

	s.refs++
	s.state.Global(callbacksGlobal)
	s.state.PushValue(index)
	s.state.RawSetInt(-2, s.refs)
	s.state.Pop(1)

	return s.refs
}

// call invokes the stored function ref with argv as its only argument. The
// current invocation is published through the args global for the duration of
// the call.
func (s *session) call(ctx context.Context, ref int, argv []string) error {
	s.setArgs(argv)
	return s.invoke(ctx, ref, func() { s.pushStrings(argv) })
}

// invoke calls the stored function ref with the single argument pushed by arg.
func (s *session) invoke(ctx context.Context, ref int, arg func()) error {
	prevCtx := s.ctx
	s.ctx = ctx
	defer func() { s.ctx = prevCtx }()

	top := s.state.Top()
	defer s.state.SetTop(top)

	s.state.Global(callbacksGlobal)
	s.state.RawGetInt(-1, ref)
	s.state.Remove(-2)
	arg()

	return s.state.ProtectedCall(1, 0, 0)
}

func (s *session) handler(ref int) registration.Handler {
	return func(ctx context.Context, argv []string) error {
		return errors.Wrap(s.call(ctx, ref, argv), "lua handler failed")
	}
}

// hook calls ref with the statement text. The args global is left as the
// handler last saw it.
func (s *session) hook(ref int, stage string) registration.Hook {
	return func(ctx context.Context, ev registration.Event) {
		err := s.invoke(ctx, ref, func() { s.state.PushString(ev.Text()) })
		if err != nil {
			slog.Warn("Lua hook failed", "stage", stage, "error", err)
		}
	}
}

// registration.run(fn [, begin [, finish]]) -> mode
func (s *session) registrationRun(l *lua.State) int {
	lua.CheckType(l, 1, lua.TypeFunction)

	var opts []registration.Option
	if l.IsFunction(2) {
		opts = append(opts, registration.WithBegin(s.hook(s.ref(2), "begin")))
	}

	if l.IsFunction(3) {
		opts = append(opts, registration.WithEnd(s.hook(s.ref(3), "end")))
	}

	argv := s.args(l)
	mode, err := s.runner.dispatcher.Run(s.ctx, argv, s.handler(s.ref(1)), opts...)
	if err != nil {
		lua.Errorf(l, "%s", err.Error())
	}

	l.PushString(mode.String())
	return 1
}

// registration.unregister([name]) -> found
func (s *session) registrationUnregister(l *lua.State) int {
	name := lua.OptString(l, 1, registration.DefaultCommandName)

	found, err := s.runner.dispatcher.Adapter().Unregister(s.ctx, name)
	if err != nil {
		lua.Errorf(l, "%s", err.Error())
	}

	l.PushBoolean(found)
	return 1
}

// args reads the args global back, so scripts may rewrite their invocation
// before handing it to registration.run.
func (s *session) args(l *lua.State) []string {
	l.Global("args")
	defer l.Pop(1)

	if !l.IsTable(-1) {
		return nil
	}

	var argv []string
	for i := 1; ; i++ {
		l.RawGetInt(-1, i)
		v, ok := l.ToString(-1)
		l.Pop(1)
		if !ok {
			return argv
		}

		argv = append(argv, v)
	}
}

func (s *session) write(l *lua.State) int {
	s.print(l, lua.CheckString(l, 1))
	return 0
}

func (s *session) writeLine(l *lua.State) int {
	s.print(l, lua.OptString(l, 1, "")+"\n")
	return 0
}

func (s *session) print(l *lua.State, text string) {
	if _, err := io.WriteString(s.runner.out, text); err != nil {
		lua.Errorf(l, "%s", err.Error())
	}
}

func (s *session) run(l *lua.State) int {
	stmt := lua.CheckString(l, 1)
	if s.runner.exec == nil {
		lua.Errorf(l, "no session available to run %q", stmt)
	}

	if err := s.runner.exec(s.ctx, stmt); err != nil {
		lua.Errorf(l, "%s", err.Error())
	}

	return 0
}

// utl.readFile(path) -> contents
func readFile(l *lua.State) int {
	path := lua.CheckString(l, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		lua.Errorf(l, "%s", errors.Wrapf(err, "unable to read %s", path).Error())
	}

	l.PushString(string(data))
	return 1
}

func (s *session) varExists(l *lua.State) int {
	l.PushBoolean(s.runner.vars.Exists(lua.CheckString(l, 1)))
	return 1
}

func (s *session) varGet(l *lua.State) int {
	v, ok := s.runner.vars.Get(lua.CheckString(l, 1))
	if !ok {
		l.PushNil()
		return 1
	}

	l.PushString(v)
	return 1
}

func (s *session) varSet(l *lua.State) int {
	s.runner.vars.Set(lua.CheckString(l, 1), lua.CheckString(l, 2))
	return 0
}

func (s *session) varRemove(l *lua.State) int {
	name := lua.CheckString(l, 1)
	found := s.runner.vars.Exists(name)
	s.runner.vars.Remove(name)

	l.PushBoolean(found)
	return 1
}

// trimmer adapts a utils trim function to utl.trim(s [, chr]), where chr
// defaults to a space.
func trimmer(fn func(string, rune) string) lua.Function {
	return func(l *lua.State) int {
		s := lua.CheckString(l, 1)
		chr := []rune(lua.OptString(l, 2, " "))
		if len(chr) != 1 {
			lua.ArgumentError(l, 2, "single character expected")
		}

		l.PushString(fn(s, chr[0]))
		return 1
	}
}

func coalesce(l *lua.State) int {
	values := make([]string, 0, l.Top())
	for i := 1; i <= l.Top(); i++ {
		if v, ok := l.ToString(i); ok {
			values = append(values, v)
		}
	}

	l.PushString(utils.Coalesce(values...))
	return 1
}

package registration

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pseudomuto/cmdreg/pkg/feedback"
)

// Mode is what a script invocation asks for.
type Mode int

const (
	// ModeRun executes the payload immediately.
	ModeRun Mode = iota

	// ModeRegister registers the payload as a command.
	ModeRegister

	// ModeUnregister removes a registered command.
	ModeUnregister
)

// Mode selector tokens, matched ignoring case.
const (
	TokenRegister   = "-cmdReg"
	TokenUnregister = "-cmdUnReg"
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeRegister:
		return "register"
	case ModeUnregister:
		return "unregister"
	default:
		return "unknown"
	}
}

// SelectMode picks the mode for an invocation. argv[0] is the script name and is
// never inspected.
func SelectMode(argv []string) Mode {
	if len(argv) < 2 {
		return ModeRun
	}

	switch {
	case strings.EqualFold(argv[1], TokenRegister):
		return ModeRegister
	case strings.EqualFold(argv[1], TokenUnregister):
		return ModeUnregister
	default:
		return ModeRun
	}
}

// Dispatcher is the entry point every hosted script calls with its payload.
type Dispatcher struct {
	adapter *Adapter
}

// NewDispatcher creates a Dispatcher for env.
func NewDispatcher(env Env) *Dispatcher {
	return &Dispatcher{adapter: NewAdapter(env)}
}

// Adapter returns the registry adapter the dispatcher registers through.
func (d *Dispatcher) Adapter() *Adapter {
	return d.adapter
}

// Run inspects argv and either runs handler, registers it or unregisters a
// command. The handler is only executed in ModeRun; in the other modes it runs
// later, when the registered command is invoked.
//
// Every call starts from feedback level All. When registering, each argument
// after the mode token is first tried as a feedback token; the first one that is
// not becomes the command name and any later ones are ignored for naming.
//
// Examples:
//
//	["load.lua"]                           -> run
//	["load.lua", "-cmdReg"]                -> register "ccTest"
//	["load.lua", "-cmdReg", "Foo", "-minimal"] -> register "Foo", minimal feedback
//	["load.lua", "-cmdUnReg", "Foo"]       -> unregister "Foo"
func (d *Dispatcher) Run(ctx context.Context, argv []string, handler Handler, opts ...Option) (Mode, error) {
	fb := d.adapter.Feedback()
	fb.Reset()

	mode := SelectMode(argv)
	slog.Debug("dispatching script", "argv", argv, "mode", mode)

	switch mode {
	case ModeRegister:
		var name string
		for _, arg := range argv[2:] {
			if fb.SetLevel(arg) || name != "" {
				continue
			}
			name = arg
		}

		_, err := d.adapter.Register(ctx, name, handler, opts...)
		return mode, err

	case ModeUnregister:
		var name string
		if len(argv) > 2 {
			name = argv[2]
		}

		_, err := d.adapter.Unregister(ctx, name)
		return mode, err

	default:
		if handler == nil {
			return mode, nil
		}

		return mode, handler(ctx, argv)
	}
}

// Level reports the feedback level currently in effect.
func (d *Dispatcher) Level() feedback.Level {
	return d.adapter.Feedback().Level()
}

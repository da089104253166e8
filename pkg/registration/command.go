package registration

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/args"
)

// DefaultCommandName is used whenever a command is registered or unregistered
// without an explicit name.
const DefaultCommandName = "ccTest"

type (
	// Handler is a script payload. It receives the invocation the payload runs
	// for: the script's own arguments when run directly, or the tokenized
	// statement when invoked as a registered command.
	Handler func(ctx context.Context, argv []string) error

	// Hook is called around every statement the host processes.
	Hook func(ctx context.Context, ev Event)

	// Option customises a Command.
	Option func(*Command)

	// Command is the listener created for a registered script. Every Command
	// gets its own class identity.
	Command struct {
		name    string
		class   ClassID
		handler Handler
		begin   Hook
		end     Hook
	}
)

// WithBegin sets the hook run before each statement.
func WithBegin(h Hook) Option {
	return func(c *Command) {
		if h != nil {
			c.begin = h
		}
	}
}

// WithEnd sets the hook run after each statement.
func WithEnd(h Hook) Option {
	return func(c *Command) {
		if h != nil {
			c.end = h
		}
	}
}

// NewCommand creates the listener for name. An empty name selects
// DefaultCommandName. A nil handler produces a command that never handles a
// statement.
func NewCommand(name string, handler Handler, opts ...Option) *Command {
	c := &Command{
		name:    commandName(name),
		class:   ClassID(uuid.NewString()),
		handler: handler,
		begin:   func(context.Context, Event) {},
		end:     func(context.Context, Event) {},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name implements Listener.
func (c *Command) Name() string { return c.name }

// Class implements Listener.
func (c *Command) Class() ClassID { return c.class }

func (c *Command) String() string { return c.name }

// Begin implements Listener.
func (c *Command) Begin(ctx context.Context, ev Event) { c.begin(ctx, ev) }

// End implements Listener.
func (c *Command) End(ctx context.Context, ev Event) { c.end(ctx, ev) }

// Handle implements Listener. The statement is re-tokenized and the handler runs
// with the resulting argument vector when the first token is the command name.
// Any other statement is declined so the host can offer it elsewhere.
func (c *Command) Handle(ctx context.Context, ev Event) (bool, error) {
	if c.handler == nil || !args.HasCommand(ev.Text(), c.name) {
		return false, nil
	}

	if err := c.handler(ctx, args.Tokenize(ev.Text())); err != nil {
		return true, errors.Wrapf(err, "command %s failed", c.name)
	}

	return true, nil
}

func commandName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultCommandName
	}

	return name
}

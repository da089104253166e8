package registration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/feedback"
)

// ErrNilHost is returned when an Adapter has no host to work against.
var ErrNilHost = errors.New("no host registry configured")

type (
	// Env is the session state the registration machinery works with.
	Env struct {
		// Host is the listener registry commands are added to.
		Host Host

		// Feedback gates every message. Messages are discarded when nil.
		Feedback *feedback.Filter

		// Scope is the active connection whose resolution cache is cleared
		// along with the global one.
		Scope Scope
	}

	// Adapter adds and removes single named commands on a Host that only
	// supports bulk operations on a category.
	Adapter struct {
		host     Host
		fb       *feedback.Filter
		scope    Scope
		category Category
	}
)

// NewAdapter creates an Adapter managing the ForAllStatements category.
func NewAdapter(env Env) *Adapter {
	fb := env.Feedback
	if fb == nil {
		fb = feedback.New(io.Discard)
	}

	return &Adapter{
		host:     env.Host,
		fb:       fb,
		scope:    env.Scope,
		category: ForAllStatements,
	}
}

// Feedback returns the filter messages are written through.
func (a *Adapter) Feedback() *feedback.Filter {
	return a.fb
}

// Register makes handler available as the command name. Any command already
// registered under that name is removed first, so registering is idempotent and
// the newest handler always wins.
//
// Host failures are returned as they are and always reported, whatever the
// feedback level.
func (a *Adapter) Register(ctx context.Context, name string, handler Handler, opts ...Option) (*Command, error) {
	cmd := NewCommand(name, handler, opts...)
	if err := a.ready(ctx); err != nil {
		return nil, err
	}

	a.fb.Emitf(feedback.Info, "Trying to unregister Command %s in case it has been registered before....", cmd.Name())
	if _, err := a.Unregister(ctx, cmd.Name()); err != nil {
		return nil, err
	}

	if err := a.host.AddListener(ctx, a.category, cmd); err != nil {
		return nil, a.fail(cmd.Name(), "registered", err)
	}

	slog.Debug("registered command", "name", cmd.Name(), "class", cmd.Class())
	a.fb.Emitf(feedback.Important, "Command %s has been registered", cmd.Name())
	return cmd, nil
}

// Unregister removes the command name and reports whether it was present.
//
// The host can only remove a whole category, and may leave some listeners in
// place when it does. The category is snapshotted, bulk removed and its caches
// cleared. Whatever is still present afterwards is the stuck set. Every
// snapshotted listener except the target is then re-added unless its class is
// in the stuck set, which leaves each surviving listener present exactly once.
func (a *Adapter) Unregister(ctx context.Context, name string) (bool, error) {
	name = commandName(name)
	if err := a.ready(ctx); err != nil {
		return false, err
	}

	snapshot, err := a.host.Listeners(ctx, a.category)
	if err != nil {
		return false, a.fail(name, "UNRegistered", err)
	}

	if err := a.host.RemoveCategory(ctx, a.category); err != nil {
		return false, a.fail(name, "UNRegistered", err)
	}

	// Stale resolutions would keep routing statements to removed listeners.
	for _, scope := range []Scope{GlobalScope, a.scope} {
		if err := a.host.ClearCaches(ctx, scope); err != nil {
			return false, a.fail(name, "UNRegistered", err)
		}
	}

	remaining, err := a.host.Listeners(ctx, a.category)
	if err != nil {
		return false, a.fail(name, "UNRegistered", err)
	}

	stuck := make(map[ClassID]struct{}, len(remaining))
	for _, l := range remaining {
		stuck[l.Class()] = struct{}{}
	}

	found := false
	for _, l := range snapshot {
		if strings.EqualFold(l.Name(), name) {
			found = true
			continue
		}

		if _, ok := stuck[l.Class()]; ok {
			continue
		}

		if err := a.host.AddListener(ctx, a.category, l); err != nil {
			return found, a.fail(name, "UNRegistered", err)
		}
	}

	slog.Debug("unregistered command", "name", name, "found", found, "listeners", len(snapshot), "stuck", len(stuck))
	if found {
		a.fb.Emitf(feedback.Info, "Command %s has been UNRegistered", name)
	} else {
		a.fb.Emitf(feedback.Info, "Command %s was not found, hence could not be UNRegistered", name)
	}

	return found, nil
}

func (a *Adapter) ready(ctx context.Context) error {
	if a.host == nil {
		a.fb.Critical(ErrNilHost.Error())
		return ErrNilHost
	}

	return ctx.Err()
}

func (a *Adapter) fail(name, action string, err error) error {
	a.fb.Critical(fmt.Sprintf("Command %s could not be %s: %v", name, action, err))
	return err
}

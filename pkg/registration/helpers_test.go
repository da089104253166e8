package registration_test

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cmdreg/pkg/registration"
)

var errHost = errors.New("host registry unavailable")

// fakeHost is a host registry whose bulk removal can be made partially
// ineffective and whose operations can be made to fail. Stuck listeners are
// picked by name, the way a busy listener instance resists removal.
type fakeHost struct {
	listeners []registration.Listener
	stuck     map[string]bool
	cleared   []registration.Scope
	adds      int
	failOn    string
}

func newFakeHost(stuck ...string) *fakeHost {
	h := &fakeHost{stuck: make(map[string]bool)}
	for _, c := range stuck {
		h.stuck[c] = true
	}
	return h
}

func (h *fakeHost) Listeners(_ context.Context, _ registration.Category) ([]registration.Listener, error) {
	if h.failOn == "list" {
		return nil, errHost
	}
	return slices.Clone(h.listeners), nil
}

func (h *fakeHost) RemoveCategory(_ context.Context, _ registration.Category) error {
	if h.failOn == "remove" {
		return errHost
	}

	h.listeners = slices.DeleteFunc(h.listeners, func(l registration.Listener) bool {
		return !h.stuck[l.Name()]
	})
	return nil
}

func (h *fakeHost) ClearCaches(_ context.Context, scope registration.Scope) error {
	if h.failOn == "clear" {
		return errHost
	}
	h.cleared = append(h.cleared, scope)
	return nil
}

func (h *fakeHost) AddListener(_ context.Context, _ registration.Category, l registration.Listener) error {
	if h.failOn == "add" {
		return errHost
	}
	h.adds++
	h.listeners = append(h.listeners, l)
	return nil
}

// dispatch offers text to every listener in order, the way a shell would.
func (h *fakeHost) dispatch(ctx context.Context, text string) (bool, error) {
	ev := registration.Statement(text)
	for _, l := range h.listeners {
		l.Begin(ctx, ev)
	}
	defer func() {
		for _, l := range h.listeners {
			l.End(ctx, ev)
		}
	}()

	for _, l := range h.listeners {
		handled, err := l.Handle(ctx, ev)
		if handled || err != nil {
			return handled, err
		}
	}
	return false, nil
}

func (h *fakeHost) names() []string {
	names := make([]string, 0, len(h.listeners))
	for _, l := range h.listeners {
		names = append(names, l.Name())
	}
	return names
}

// staticListener is a listener with a fixed name and class that never handles
// anything.
type staticListener struct {
	name  string
	class registration.ClassID
}

func (s *staticListener) Name() string {
	return s.name
}

func (s *staticListener) Class() registration.ClassID {
	return s.class
}

func (s *staticListener) Begin(context.Context, registration.Event) {}

func (s *staticListener) End(context.Context, registration.Event) {}

func (s *staticListener) Handle(context.Context, registration.Event) (bool, error) {
	return false, nil
}

func noop(context.Context, []string) error { return nil }

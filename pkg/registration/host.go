package registration

import (
	"context"
)

type (
	// Category groups listeners in the host registry. Hosts only support bulk
	// operations at this granularity.
	Category string

	// Scope identifies a connection whose listener resolution the host caches.
	Scope string

	// ClassID is the identity the host uses to tell listener implementations
	// apart. Listeners that are distinct commands normally carry distinct
	// classes.
	ClassID string

	// Event is a statement the host offers to listeners.
	Event interface {
		// Text returns the raw text of the statement.
		Text() string
	}

	// Statement is an Event made of literal statement text.
	Statement string

	// Listener is a handler attached to the host's statement stream.
	Listener interface {
		// Name returns the command name the listener answers to.
		Name() string

		// Class returns the listener's class identity.
		Class() ClassID

		// Begin is called before a statement is offered to any listener.
		Begin(ctx context.Context, ev Event)

		// Handle is offered the statement and reports whether it handled it.
		Handle(ctx context.Context, ev Event) (bool, error)

		// End is called once the statement has been processed.
		End(ctx context.Context, ev Event)
	}

	// Host is the listener registry of the hosting shell.
	Host interface {
		// Listeners enumerates the listeners of a category in registration order.
		Listeners(ctx context.Context, cat Category) ([]Listener, error)

		// RemoveCategory removes every listener of a category. Removal is best
		// effort: listeners may survive it, e.g. while they are executing.
		RemoveCategory(ctx context.Context, cat Category) error

		// ClearCaches drops cached listener resolution for scope.
		ClearCaches(ctx context.Context, scope Scope) error

		// AddListener adds a single listener to a category.
		AddListener(ctx context.Context, cat Category, l Listener) error
	}
)

const (
	// ForAllStatements is the category of listeners offered every statement.
	ForAllStatements Category = "for-all-statements"

	// GlobalScope is the connection-agnostic cache scope.
	GlobalScope Scope = ""
)

// Text implements Event.
func (s Statement) Text() string {
	return string(s)
}

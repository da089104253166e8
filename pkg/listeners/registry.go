package listeners

import (
	"context"
	"slices"
	"sync"

	"github.com/pseudomuto/cmdreg/pkg/registration"
)

// Registry holds the listeners of every category. The zero value is not usable,
// create one with New.
type Registry struct {
	mu         sync.Mutex
	categories map[registration.Category][]registration.Listener
	cache      map[registration.Scope]map[registration.Category][]registration.Listener
	busy       map[registration.Listener]int
}

var _ registration.Host = (*Registry)(nil)

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		categories: make(map[registration.Category][]registration.Listener),
		cache:      make(map[registration.Scope]map[registration.Category][]registration.Listener),
		busy:       make(map[registration.Listener]int),
	}
}

// Listeners implements registration.Host.
func (r *Registry) Listeners(ctx context.Context, cat registration.Category) ([]registration.Listener, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.categories[cat]), nil
}

// RemoveCategory implements registration.Host. Listeners that are handling a
// statement stay registered.
func (r *Registry) RemoveCategory(ctx context.Context, cat registration.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := slices.DeleteFunc(r.categories[cat], func(l registration.Listener) bool {
		return r.busy[l] == 0
	})
	if len(kept) == 0 {
		delete(r.categories, cat)
		return nil
	}

	r.categories[cat] = kept
	return nil
}

// ClearCaches implements registration.Host.
func (r *Registry) ClearCaches(ctx context.Context, scope registration.Scope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cache, scope)
	return nil
}

// AddListener implements registration.Host.
func (r *Registry) AddListener(ctx context.Context, cat registration.Category, l registration.Listener) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[cat] = append(r.categories[cat], l)
	return nil
}

// Resolve returns the listeners statements of scope are offered to. The first
// resolution of a scope is cached until ClearCaches is called for it.
func (r *Registry) Resolve(scope registration.Scope, cat registration.Category) []registration.Listener {
	r.mu.Lock()
	defer r.mu.Unlock()

	byCategory, ok := r.cache[scope]
	if !ok {
		byCategory = make(map[registration.Category][]registration.Listener)
		r.cache[scope] = byCategory
	}

	resolved, ok := byCategory[cat]
	if !ok {
		resolved = slices.Clone(r.categories[cat])
		byCategory[cat] = resolved
	}

	return resolved
}

// Names returns the command names registered in a category, in order.
func (r *Registry) Names(cat registration.Category) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.categories[cat]))
	for _, l := range r.categories[cat] {
		names = append(names, l.Name())
	}

	return names
}

// Dispatch offers ev to the ForAllStatements listeners resolved for scope. All
// listeners see Begin, then each is asked to Handle the statement until one
// does, then all see End. A handler error stops the chain and is returned once
// the End hooks have run.
func (r *Registry) Dispatch(ctx context.Context, scope registration.Scope, ev registration.Event) (bool, error) {
	resolved := r.Resolve(scope, registration.ForAllStatements)
	if len(resolved) == 0 {
		return false, nil
	}

	for _, l := range resolved {
		l.Begin(ctx, ev)
	}
	defer func() {
		for _, l := range resolved {
			l.End(ctx, ev)
		}
	}()

	for _, l := range resolved {
		handled, err := r.handle(ctx, l, ev)
		if handled || err != nil {
			return handled, err
		}
	}

	return false, nil
}

func (r *Registry) handle(ctx context.Context, l registration.Listener, ev registration.Event) (bool, error) {
	r.mu.Lock()
	r.busy[l]++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.busy[l]--; r.busy[l] <= 0 {
			delete(r.busy, l)
		}
		r.mu.Unlock()
	}()

	return l.Handle(ctx, ev)
}

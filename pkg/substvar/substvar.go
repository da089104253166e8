// Package substvar stores the substitution variables of a shell session.
//
// Variable names are case-insensitive and kept upper case. Statements reference
// variables as &NAME or &&NAME, optionally terminated by a period so a value can
// be glued to following text (&PREFIX._table).
package substvar

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

var reference = regexp.MustCompile(`&&?([A-Za-z_][A-Za-z0-9_$#]*)\.?`)

// Store holds substitution variables. The zero value is not usable, create one
// with New.
type Store struct {
	vars map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{vars: make(map[string]string)}
}

// Exists reports whether name is defined.
func (s *Store) Exists(name string) bool {
	_, ok := s.vars[key(name)]
	return ok
}

// Get returns the value of name and whether it is defined.
func (s *Store) Get(name string) (string, bool) {
	v, ok := s.vars[key(name)]
	return v, ok
}

// Set defines name, replacing any previous value.
func (s *Store) Set(name, value string) {
	s.vars[key(name)] = value
}

// Remove undefines name. Removing an undefined variable is a no-op.
func (s *Store) Remove(name string) {
	delete(s.vars, key(name))
}

// Names returns the defined variable names in sorted order.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}

// Substitute replaces every reference to a defined variable in text with its
// value. References to undefined variables are left as they are.
//
// Example:
//
//	s.Set("tbl", "users")
//	s.Substitute("select * from &TBL where id = &id") // select * from users where id = &id
func (s *Store) Substitute(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	return reference.ReplaceAllStringFunc(text, func(ref string) string {
		name := reference.FindStringSubmatch(ref)[1]
		if v, ok := s.Get(name); ok {
			return v
		}

		return ref
	})
}

func key(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

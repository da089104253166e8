// Package listeners is the shell's statement listener registry.
//
// It implements registration.Host with the same restrictions a real shell
// registry has: listeners are managed per category, a category can only be
// removed as a whole, and removal skips listeners that are executing at the
// time. Listener resolution is cached per connection scope until the cache is
// explicitly cleared, so callers that remove listeners must clear the caches
// or statements keep reaching the removed ones.
package listeners

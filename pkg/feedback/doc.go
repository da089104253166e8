// Package feedback decides which session messages reach the user.
//
// Every message carries a Priority and is written only when that priority is at
// or above the session's current Level. Critical messages bypass the level
// entirely so failures are never hidden, whatever the user asked for.
//
// Levels are selected with the same tokens scripts accept on their command
// line:
//
//	-all      every message (the default)
//	-minimal  only important messages, such as a successful registration
//	-silent   nothing but critical messages
package feedback

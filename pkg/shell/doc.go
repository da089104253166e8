// Package shell implements the interactive SQL session that hosts registered
// commands.
//
// Every statement is first offered to the commands registered by hosted
// scripts. Statements no command handles are tried as builtins and finally
// executed as SQL against the configured database (an embedded SQLite database
// or a ClickHouse server).
//
// Builtins:
//
//	script <file> [args...]   run a hosted Lua script (also @<file> [args...])
//	define [NAME [= value]]   list, show or set substitution variables
//	undefine NAME...          remove substitution variables
//	show commands             list registered commands
//	exit | quit               leave the session
//
// Substitution variables are referenced as &NAME or &&NAME, optionally
// terminated by a period, and are expanded before a statement is dispatched.
package shell

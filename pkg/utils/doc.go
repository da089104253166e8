// Package utils provides the small helpers shared by the shell and the Lua
// script runtime.
//
// # Text (text.go)
//
// Character trimming and value coalescing, exposed to scripts as utl.trim,
// utl.ltrim, utl.rtrim and utl.coalesce:
//
//	utils.Trim("**name**", '*')      // "name"
//	utils.Coalesce("", "", "ccTest") // "ccTest"
//
// # System (system.go)
//
// Operating system detection and the per-user settings directory, which holds
// the default script library:
//
//	if utils.CurrentOS().Windows {
//		// ...
//	}
//
//	dir := filepath.Join(utils.SettingsPath(), "scripts")
package utils

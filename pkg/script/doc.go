// Package script runs hosted Lua scripts inside a shell session.
//
// A script receives its invocation in the global args table and hands its
// handler to registration.run, which runs it immediately, registers it as a
// named command, or unregisters that command depending on the invocation:
//
//	-- greet.lua
//	registration.run(function(argv)
//	  utl.writeLine("hello " .. utl.coalesce(argv[2], "world"))
//	end)
//
// From the shell:
//
//	SQL> script greet.lua Bob
//	hello Bob
//	SQL> script greet.lua -cmdReg hello
//	SQL> hello Alice
//	hello Alice
//	SQL> script greet.lua -cmdUnReg hello
//
// Registered handlers keep their Lua state alive, so globals a script sets
// while registering are visible to every later invocation of the command.
package script

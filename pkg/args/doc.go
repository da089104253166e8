// Package args splits raw command lines into argument vectors.
//
// A command line typed into the shell is turned into tokens the same way for
// every consumer: the registered command listeners use it to decide whether a
// statement is addressed to them, the shell uses it to find builtins, and the
// script runtime uses it to build the argument vector a hosted script sees.
//
// # Token Rules
//
//   - A double-quoted run is one token. The quotes are stripped and anything in
//     between, whitespace included, is kept verbatim.
//   - Outside quotes, a token is a maximal run of non-whitespace characters.
//   - A quote without a closing partner is an ordinary character.
//   - Inner quotes cannot be escaped.
//
// # Usage Example
//
//	for tok := range args.Tokens(`script load.lua "my file.txt" -silent`) {
//		fmt.Println(tok)
//	}
//	// script
//	// load.lua
//	// my file.txt
//	// -silent
//
//	argv := args.Tokenize(`hello "big world"`)
//	// []string{"hello", "big world"}
package args

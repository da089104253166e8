package args

import (
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// commandLexer recognises the three kinds of runs a command line is made of.
	// Rules are tried in order so a complete quoted run wins over a bare word.
	commandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Quoted", Pattern: `"[^"]*"`},
		{Name: "Word", Pattern: `[^\s]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	quotedToken = commandLexer.Symbols()["Quoted"]
	wordToken   = commandLexer.Symbols()["Word"]
)

// Tokens returns the tokens of line in left-to-right order.
//
// The sequence is lazy: the line is only scanned as far as the consumer pulls
// values. It can be ranged over any number of times, each range starting a new
// scan from the beginning of the line.
//
// Example:
//
//	for tok := range args.Tokens(`a "b c" d`) {
//		fmt.Println(tok) // a, b c, d
//	}
func Tokens(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		lex, err := commandLexer.LexString("", line)
		if err != nil {
			return
		}

		for {
			tok, err := lex.Next()
			if err != nil || tok.EOF() {
				return
			}

			switch tok.Type {
			case quotedToken:
				if !yield(tok.Value[1 : len(tok.Value)-1]) {
					return
				}
			case wordToken:
				if !yield(tok.Value) {
					return
				}
			}
		}
	}
}

// Tokenize collects every token of line into a slice. An empty or blank line
// yields an empty result.
//
// Examples:
//   - `a "b c" d` -> ["a", "b c", "d"]
//   - an empty line -> []
//   - `""` -> [""]
//   - `say "hi` -> ["say", "\"hi"]
func Tokenize(line string) []string {
	return slices.Collect(Tokens(line))
}

// First returns the first token of line. Only the first token is scanned.
func First(line string) (string, bool) {
	for tok := range Tokens(line) {
		return tok, true
	}

	return "", false
}

// HasCommand reports whether the first token of line equals name, ignoring case.
func HasCommand(line, name string) bool {
	first, ok := First(line)
	return ok && strings.EqualFold(first, name)
}

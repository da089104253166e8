package args_test

import (
	"testing"

	"github.com/pseudomuto/cmdreg/pkg/args"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{name: "empty line", line: "", expected: nil},
		{name: "blank line", line: "   \t ", expected: nil},
		{name: "single word", line: "hello", expected: []string{"hello"}},
		{name: "quoted run keeps whitespace", line: `a "b c" d`, expected: []string{"a", "b c", "d"}},
		{name: "empty quotes", line: `""`, expected: []string{""}},
		{name: "empty quotes between words", line: `a "" b`, expected: []string{"a", "", "b"}},
		{name: "whitespace collapses", line: "a    b\t\tc", expected: []string{"a", "b", "c"}},
		{name: "leading and trailing whitespace", line: "  a b  ", expected: []string{"a", "b"}},
		{name: "unterminated quote is ordinary", line: `say "hi there`, expected: []string{"say", `"hi`, "there"}},
		{name: "quote inside a word", line: `a"b c"`, expected: []string{`a"b`, `c"`}},
		{name: "quoted run followed by word", line: `"b c"d`, expected: []string{"b c", "d"}},
		{name: "quoted path", line: `script file2var.lua "D:\Temp\My File.txt"`, expected: []string{"script", "file2var.lua", `D:\Temp\My File.txt`}},
		{name: "feedback flags", line: "-cmdReg Foo -minimal", expected: []string{"-cmdReg", "Foo", "-minimal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := args.Tokenize(tt.line)
			if tt.expected == nil {
				require.Empty(t, got)
				return
			}

			require.Equal(t, tt.expected, got)
		})
	}
}

func TestTokensIsRestartable(t *testing.T) {
	seq := args.Tokens(`one "two three" four`)

	var first, second []string
	for tok := range seq {
		first = append(first, tok)
	}
	for tok := range seq {
		second = append(second, tok)
	}

	require.Equal(t, []string{"one", "two three", "four"}, first)
	require.Equal(t, first, second)
}

func TestTokensStopsEarly(t *testing.T) {
	var seen []string
	for tok := range args.Tokens("a b c d") {
		seen = append(seen, tok)
		if len(seen) == 2 {
			break
		}
	}

	require.Equal(t, []string{"a", "b"}, seen)
}

func TestFirst(t *testing.T) {
	tok, ok := args.First(`  "my cmd" arg`)
	require.True(t, ok)
	require.Equal(t, "my cmd", tok)

	_, ok = args.First("   ")
	require.False(t, ok)
}

func TestHasCommand(t *testing.T) {
	require.True(t, args.HasCommand("Foo arg1", "foo"))
	require.True(t, args.HasCommand("FOO", "foo"))
	require.False(t, args.HasCommand("bar arg1", "foo"))
	require.False(t, args.HasCommand("foobar", "foo"))
	require.False(t, args.HasCommand("", "foo"))
}
